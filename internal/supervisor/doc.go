// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

The tree has two layers so a failing background job cannot take the HTTP
listener down with it:

	RootSupervisor ("reelrank")
	├── DataSupervisor ("data-layer")
	│   ├── IngestService (if INGEST_ENABLED)
	│   └── RetrainService (if MODEL_RETRAIN_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. A service that has
finished its work for good returns suture.ErrDoNotRestart.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog on top of the zerolog-backed slog logger from the logging
package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

Service wrappers live in the services subpackage.
*/
package supervisor

// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

# Tree Layout

	halaqa-discovery (root)
	├── data-layer
	│   ├── history-recorder
	│   └── store-monitor
	└── api-layer
	    └── http-server

Each layer is its own supervisor, so a crash loop in the recorder backs off
inside the data layer while the API keeps serving.

# Restart Policy

A service that returns an error is restarted. Failures decay at
FailureDecay per second; beyond FailureThreshold the layer waits
FailureBackoff before the next restart. A service that returns
suture.ErrDoNotRestart is removed from its layer.

# Logging

Supervisor events go through sutureslog. The slog logger passed to
NewSupervisorTree is normally logging.NewSlogLogger, which forwards to the
global zerolog logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(recorder)
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 15*time.Second, logger))
	err = <-tree.ServeBackground(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor

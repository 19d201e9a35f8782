// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package discovery joins query processing and recommendation behind one
service.

Service owns a query processor, a recommendation engine and an optional
history recorder:

	svc, err := discovery.New(processor, engine, recorder, logger)
	pq := svc.ProcessQuery(ctx, "tafsir of surah al-kahf", userID)
	res := svc.Discover(ctx, "ramadan duas", recommend.RecommendationContext{UserID: userID})

ProcessQuery records every non-degraded query for suggestions without
waiting on the write. Discover feeds the strongest detected category into
the recommendation context when the caller did not set one.
GetRecommendations serves personalized results to known users and combined
results to everyone else.
*/
package discovery

// Package naveeka provides an embedded Go client for the Naveeka
// geospatial entity search engine, backed by Redis Stack or an
// in-memory store.
//
// The client wires the full search pipeline in-process, so no HTTP
// server is needed:
//
//	client, _ := naveeka.New(ctx, naveeka.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	client.Seed(ctx, entities)
//
//	page, _ := client.Search().List(ctx, naveeka.Query{
//	    Filter: naveeka.Filter{Kind: "restaurant", City: "Panjim"},
//	    Sort:   naveeka.SortRatingDesc,
//	})
//	hits, _ := client.Search().Near(ctx, naveeka.Filter{}, 73.83, 15.50, 5, 0)
//
// For tests and local development the in-memory backend needs no
// external services:
//
//	client, _ := naveeka.New(ctx, naveeka.WithMemory())
package naveeka

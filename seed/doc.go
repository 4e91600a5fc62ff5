// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed fills the articles table with generated demo content.

Each article gets a fake sentence as its title, five fake paragraphs separated
by blank lines, and a picsum.photos placeholder image keyed by its position:

	f := gofakeit.New(0) // 0 picks a random seed
	seed.SeedIfEmpty(ctx, conn, f, cfg.SeedCount)

Reset replaces all rows in one transaction and backs both cmd/seed -reset and
the scheduled reseed job.
*/
package seed

// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package query turns raw search strings into structured ProcessedQuery values.

A query passes through these stages:

  - Lexing: Lex produces a typed token stream of exact phrases ("..."),
    exclusions (-word), inclusions (+word), boolean operators (AND, OR, NOT)
    and plain terms.
  - Synonym expansion: every positive term is looked up in a SynonymSource,
    exact match first and substring match second. Lookups are cached and a
    failing lookup only costs that term its synonyms.
  - Emission: the expanded query, a tsquery-style boolean expression and a
    fuzzy (trigram) plan are built from the tokens.
  - Classification: categories via keyword matching, language via Unicode
    ranges, and complexity from term count and operator presence.

Processing never fails. If any stage panics the processor logs the cause and
returns a minimal result whose ExpandedQuery is the original string.

Usage:

	p, err := query.New(query.DefaultConfig(), query.DefaultSynonyms(), historyStore, logger)
	if err != nil {
		return err
	}
	pq := p.Process(ctx, `+quran -tafsir "five pillars"`)
	fmt.Println(pq.BooleanQuery) // 'five' <-> 'pillars' & 'quran' & !'tafsir'
*/
package query

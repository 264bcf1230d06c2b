// Package punkt provides unsupervised sentence boundary detection and word
// tokenization.
//
// A model is learned from plain text without annotations: the trainer
// finds abbreviations, collocations and frequent sentence starters from
// corpus statistics, and the Segmenter uses them to decide which periods
// end sentences.
//
// # Quick Start
//
//	m, err := punkt.Train(ctx, slices.Values(documents))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	seg, err := punkt.NewFromModel(m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sentences, err := seg.Segment(ctx, "Dr. Smith lives in the U.S. now. He likes it.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range sentences {
//	    fmt.Println(seg.TokenizeWords(s))
//	}
//
// # Thread Safety
//
// Models are immutable and a Segmenter is safe for concurrent use.
// Training shards documents across workers, configurable via WithWorkers.
//
// # Model Files
//
// model.Marshal encodes a model for New to load. The store package keeps
// named models on disk or in SQLite.
package punkt

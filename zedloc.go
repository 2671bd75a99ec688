// Package zedloc fills empty entries in zed-loc localization maps using a
// machine-translation service, with conservative risk filters so that
// identifiers, file paths, URLs and debug format strings are never sent for
// translation.
//
// The document is a JSON object keyed by source file path, each value a map
// of original string to translated string. A run is a single ordered pass:
// classify, mask placeholders, translate, unmask, validate the result script,
// write. The input file is never mutated.
//
// Basic usage:
//
//	import (
//	    "context"
//	    zedloc "github.com/Whomi996/zed-loc"
//	    "github.com/Whomi996/zed-loc/cache"
//	    "github.com/Whomi996/zed-loc/l10nmap"
//	    "github.com/Whomi996/zed-loc/provider"
//	)
//
//	func main() {
//	    doc, err := l10nmap.ParseFile("zh.json")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    p := provider.NewGoogleProvider(provider.GoogleConfig{})
//
//	    f := zedloc.NewFiller("zh-CN", p,
//	        zedloc.WithCache(cache.NewInMemoryCache(0)),
//	        zedloc.WithMaxFill(250),
//	    )
//
//	    stats, err := f.Fill(context.Background(), doc)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = doc.WriteFile("l10n.generated.json")
//	    fmt.Printf("filled %d entries\n", stats.Filled)
//	}
package zedloc

// Package cache provides a small generic thread-safe cache with a soft
// size limit, used to keep parsed fonts across dataset parts.
//
//	fonts := cache.New[string, *text.Source](64)
//	src, err := fonts.GetOrCreate(path, func() (*text.Source, error) {
//	    return text.NewSourceFromFile(path)
//	})
package cache

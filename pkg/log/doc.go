// Package log provides the logging abstraction used by spritebench.
//
// The Logger interface keeps the capacity search independent of any logging
// library. A zerolog adapter and a no-op logger are provided.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger = log.With(logger, log.String("test", "checker/raster/rotate"))
//	logger.Info("testing", log.Int("objects", 25))
//
// Use [NewNoopLogger] in tests.
package log

// Package telemetry provides structured logging for curvcfg.
//
// The package wraps zerolog with a small Logger type that carries the
// fields the tool cares about (run_id, component, file, artifact) and can
// be embedded in a context.Context so every layer of a run logs with the
// same identity.
//
// Initialize a logger at CLI startup:
//
//	cfg := telemetry.DefaultLoggingConfig()
//	logger, err := telemetry.NewLogger(cfg)
//	if err != nil {
//		// handle error
//	}
//	ctx := logger.WithContext(context.Background())
//
// Downstream code retrieves it with FromContext and derives child loggers
// per component:
//
//	log := telemetry.FromContext(ctx).NewComponentLogger("emit")
//	log.WithFile(path).Debug("artifact written")
package telemetry

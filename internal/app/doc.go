// Package app wires configuration, telemetry, storage, services and the
// HTTP router into a runnable sheetlens server.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, the YAML file, a dotenv file and the environment
//	2. Initialize logging and OpenTelemetry
//	3. Open the upload store
//	4. Create the file, analysis and health services
//	5. Mount handlers behind the middleware chain
//	6. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests for up
// to the configured shutdown timeout and flushes telemetry. Errors are
// returned to the caller; the package never calls os.Exit.
package app

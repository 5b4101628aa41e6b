// Package mongo provides MongoDB connection management for the service.
//
// Configuration is environment-driven (see Config) so the same binary runs
// unchanged across development, staging, and production. Connect retries
// transient failures during startup and verifies connectivity with a ping
// before returning, and Healthcheck exposes the same ping for orchestration
// probes.
package mongo

// Package config provides configuration management for vaults-mcp.
//
// Configuration is loaded from multiple sources and merged in a specific
// order, with later sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (embedded in binary)
//  2. User Configuration (~/.config/vaults-mcp/config.yaml)
//  3. Project Configuration (./.vaults-mcp/config.yaml)
//  4. The .env file in the working directory
//  5. Process environment variables prefixed with VAULTS_
//
// LoadConfigFromPath replaces layers 2 and 3 with a single explicit file.
//
// # Configuration Structure
//
//	baseUrl: "https://vaults.example.net"
//	functionKey: "secret"
//	timeout: 30
//	maxRetries: 5
//	retryDelay: 1.0
//	logLevel: INFO
//	transport:
//	  mode: sse
//	  host: localhost
//	  port: 8080
//
// # Environment Variables
//
// VAULTS_BASE_URL, VAULTS_FUNCTION_KEY, VAULTS_TIMEOUT, VAULTS_MAX_RETRIES,
// VAULTS_RETRY_DELAY, VAULTS_LOG_LEVEL, VAULTS_SERVER_NAME,
// VAULTS_SERVER_VERSION, VAULTS_TRANSPORT, VAULTS_SSE_HOST and
// VAULTS_SSE_PORT. Names are matched case-insensitively.
//
// # Validation
//
// After merging, the base URL has its trailing slash removed and the result
// is validated. Validation errors wrap the Err* sentinels so callers can test
// them with errors.Is.
package config

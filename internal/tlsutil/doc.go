// Package tlsutil builds the hardened TLS client settings used for
// outbound connections such as the Redis export sink (TLS 1.2+, AEAD
// cipher suites only).
package tlsutil

// Package metrics defines the Prometheus instrumentation for the music
// vault backend: HTTP traffic, document store saves, cover image
// processing, and audio duration probing.
//
// All collectors are registered with the default registry via promauto and
// exposed on the dedicated metrics port.
package metrics

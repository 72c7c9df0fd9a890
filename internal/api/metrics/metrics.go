// Package metrics defines the custom Prometheus metrics of the directory API.
// HTTP request metrics come from the echoprometheus middleware; the counters
// here track business events only.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successful business registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of business accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "disabled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersDeletedTotal counts accounts removed by an admin.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── Video metrics ─────────────────────────────────────────────────────────────

// VideosUploadedTotal counts stored videos.
// Label:
//   - category: canonical category slug
var VideosUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "videos_uploaded_total",
		Help:      "Total number of videos uploaded, by category.",
	},
	[]string{"category"},
)

// UploadsRejectedTotal counts files refused before or during storage.
// Labels:
//   - kind: "logos" or "videos"
//   - reason: "size", "type" or "missing"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of uploads rejected by policy.",
	},
	[]string{"kind", "reason"},
)

// VideosDeletedTotal counts videos removed by their owner or an admin.
var VideosDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "videos_deleted_total",
		Help:      "Total number of videos deleted.",
	},
)

// UploadSizeBytes observes the size of stored files.
// Label:
//   - kind: "logos" or "videos"
var UploadSizeBytes = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of stored uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(64<<10, 4, 8), // 64KiB … 1GiB
	},
	[]string{"kind"},
)

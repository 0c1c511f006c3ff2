// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ducktype_conversations_created_total",
		Help: "Conversations created.",
	})

	MessagesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ducktype_messages_appended_total",
		Help: "Messages appended to transcripts.",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ducktype_upstream_requests_total",
		Help: "Calls to the generative language API by task and outcome.",
	}, []string{"task", "outcome"})

	ParserFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ducktype_parser_fallbacks_total",
		Help: "Model responses that failed extraction and used the fallback.",
	}, []string{"task"})
)

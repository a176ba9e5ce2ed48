// Package pipeline orchestrates adapters over canonical server lists:
// transform first (so compatibility bridging can rescue otherwise-dropped
// servers), then filter, recording every effective change along the way.
package pipeline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mcpsync/mcpsync/internal/assistant"
	"github.com/mcpsync/mcpsync/internal/mcp"
)

// TransformationRecord describes one server an adapter rewrote. Records are
// produced only for servers that actually changed; a no-op transform leaves
// no trace.
type TransformationRecord struct {
	// Original is the server as the caller supplied it.
	Original *mcp.Server

	// Transformed is the rewritten server.
	Transformed *mcp.Server

	// Reason names the assistant and describes what changed.
	Reason string
}

// Result carries the pipeline output for one adapter.
type Result struct {
	// Servers is the transformed, filtered list in input order.
	Servers []*mcp.Server

	// Transformations records every server the adapter changed.
	Transformations []TransformationRecord
}

// Run applies the adapter to the server list: transform, diff against the
// originals, filter. The input slice and its servers are never modified.
func Run(adapter *assistant.Adapter, servers []*mcp.Server) Result {
	transformed := adapter.Transform(servers)

	var records []TransformationRecord
	for i, orig := range servers {
		if reason, changed := diff(adapter.Name(), orig, transformed[i]); changed {
			records = append(records, TransformationRecord{
				Original:    orig,
				Transformed: transformed[i],
				Reason:      reason,
			})
		}
	}

	return Result{
		Servers:         adapter.Filter(transformed),
		Transformations: records,
	}
}

// diff compares a server before and after transformation and, when they
// differ, selects a reason by priority: kind change beats command change
// beats args, env, headers; anything else falls through to a generic note.
func diff(assistantName string, orig, transformed *mcp.Server) (string, bool) {
	if orig == transformed {
		return "", false
	}

	kindChanged := orig.EffectiveKind() != transformed.EffectiveKind()
	commandChanged := orig.Command != transformed.Command
	argsChanged := !slices.Equal(orig.Args, transformed.Args)
	envChanged := !maps.Equal(orig.Env, transformed.Env)
	urlChanged := orig.URL != transformed.URL
	headersChanged := !maps.Equal(orig.Headers, transformed.Headers)

	switch {
	case kindChanged:
		return fmt.Sprintf("%s does not support %s servers; converted %q to %s",
			assistantName, orig.EffectiveKind(), orig.Name, transformed.EffectiveKind()), true
	case commandChanged:
		return fmt.Sprintf("%s replaced the command of %q for compatibility",
			assistantName, orig.Name), true
	case argsChanged:
		return fmt.Sprintf("%s adjusted the arguments of %q for compatibility",
			assistantName, orig.Name), true
	case envChanged:
		return fmt.Sprintf("%s adjusted the environment of %q for compatibility",
			assistantName, orig.Name), true
	case headersChanged:
		return fmt.Sprintf("%s adjusted the headers of %q for compatibility",
			assistantName, orig.Name), true
	case urlChanged:
		return fmt.Sprintf("%s modified %q for compatibility", assistantName, orig.Name), true
	default:
		return "", false
	}
}

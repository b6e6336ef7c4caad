package engine

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-drift/postboard/pkg/core"
)

const maxTreeDepth = 64

// WidgetTreeNode represents a node in the serialized element tree.
type WidgetTreeNode struct {
	WidgetType  string           `json:"widgetType"`
	ElementType string           `json:"elementType"`
	Key         any              `json:"key,omitempty"`
	Depth       int              `json:"depth"`
	HasState    bool             `json:"hasState,omitempty"`
	Children    []WidgetTreeNode `json:"children,omitempty"`
}

// DebugHandler serves diagnostics for e:
//
//	GET /health       {"status":"ok"}
//	GET /widget-tree  element tree as JSON
//	GET /frames       recent frame samples
//	GET /runtime      recent runtime samples
//	GET /frame        last painted frame as plain text
func DebugHandler(e *Engine) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /widget-tree", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
			}
		}()
		e.frameLock.Lock()
		root := e.root
		if root == nil {
			e.frameLock.Unlock()
			http.Error(w, "no widget tree", http.StatusServiceUnavailable)
			return
		}
		tree := serializeWidgetTree(root, 0)
		e.frameLock.Unlock()
		writeJSON(w, tree)
	})
	mux.HandleFunc("GET /frames", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.trace.Snapshot())
	})
	mux.HandleFunc("GET /runtime", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, e.runtime.Snapshot())
	})
	mux.HandleFunc("GET /frame", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(e.LastFrame()))
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func serializeWidgetTree(elem core.Element, depth int) WidgetTreeNode {
	if elem == nil {
		return WidgetTreeNode{ElementType: "<nil>"}
	}

	widget := elem.Widget()
	node := WidgetTreeNode{
		ElementType: reflect.TypeOf(elem).String(),
		Depth:       elem.Depth(),
	}
	if widget != nil {
		node.WidgetType = reflect.TypeOf(widget).String()
		node.Key = safeKey(widget.Key())
	}
	if _, ok := elem.(*core.StatefulElement); ok {
		node.HasState = true
	}

	if depth < maxTreeDepth {
		elem.VisitChildren(func(child core.Element) bool {
			node.Children = append(node.Children, serializeWidgetTree(child, depth+1))
			return true
		})
	}
	return node
}

// safeKey returns key if it encodes as JSON, otherwise its %v form.
func safeKey(key any) any {
	if key == nil {
		return nil
	}
	if _, err := json.Marshal(key); err != nil {
		return fmt.Sprintf("%v", key)
	}
	return key
}

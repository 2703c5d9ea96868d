package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Query operations accepted by the /api/query endpoint.
const (
	opHowMany     = "how_many"
	opFindFirst   = "find_first"
	opMaxDepth    = "max_depth"
	opUniqueRoles = "unique_roles"
	opLeafCount   = "leaf_count"
)

// Traversal methods accepted by the /api/query endpoint. The empty string
// means the default sequential scan.
const (
	methodSeq        = "seq"
	methodRoleset    = "roleset"
	methodStack      = "stack"
	methodPar        = "par"
	methodParRoleset = "par-roleset"
)

// Metric status labels.
const (
	statusOK    = "ok"
	statusError = "error"
)

// QueryRequest holds the request body for the query API endpoint.
type QueryRequest struct {
	Op     string `json:"op"`
	Role   string `json:"role,omitempty"`
	Method string `json:"method,omitempty"`
}

// QueryResponse holds the response body for the query API endpoint. Fields
// are populated per operation: Count for how_many and leaf_count, Node and
// Found for find_first, Depth for max_depth, Roles for unique_roles.
type QueryResponse struct {
	Op        string   `json:"op"`
	Role      string   `json:"role,omitempty"`
	Count     *int     `json:"count,omitempty"`
	Node      *int     `json:"node,omitempty"`
	Found     *bool    `json:"found,omitempty"`
	Depth     *int     `json:"depth,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	ElapsedMS float64  `json:"elapsed_ms"`
	Error     string   `json:"error,omitempty"`
}

// StatsResponse holds the response body for the stats API endpoint.
type StatsResponse struct {
	Nodes       int            `json:"nodes"`
	Leaves      int            `json:"leaves"`
	MaxDepth    int            `json:"max_depth"`
	MaxChildren int            `json:"max_children"`
	UniqueRoles []string       `json:"unique_roles"`
	PerRole     map[string]int `json:"per_role"`
}

func (s *Server) handleQuery(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var req QueryRequest

	decodeErr := json.NewDecoder(request.Body).Decode(&req)
	if decodeErr != nil {
		http.Error(responseWriter, "Invalid request body", http.StatusBadRequest)

		return
	}

	start := time.Now()
	response, status := s.runQuery(req)
	elapsed := time.Since(start)

	response.ElapsedMS = float64(elapsed.Microseconds()) / 1e3

	metricStatus := statusOK
	if response.Error != "" {
		metricStatus = statusError
	}

	s.metrics.ObserveQuery(req.Op, metricStatus, elapsed)

	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(status)
	s.writeJSON(request.Context(), responseWriter, response)
}

// runQuery dispatches one query. It returns the response body and HTTP
// status; engine errors surface in the body, not as transport failures.
func (s *Server) runQuery(req QueryRequest) (QueryResponse, int) {
	response := QueryResponse{Op: req.Op, Role: req.Role}

	switch req.Op {
	case opHowMany, opFindFirst:
	case opMaxDepth, opUniqueRoles, opLeafCount:
		return s.runRolelessQuery(response, req)
	default:
		response.Error = "unknown op: " + req.Op

		return response, http.StatusBadRequest
	}

	target, roleErr := role.FromName(req.Role)
	if roleErr != nil {
		response.Error = roleErr.Error()

		return response, http.StatusBadRequest
	}

	switch req.Op {
	case opHowMany:
		count, err := s.howMany(target, req.Method)
		if err != "" {
			response.Error = err

			return response, http.StatusBadRequest
		}

		response.Count = &count
	case opFindFirst:
		id, found, err := s.findFirst(target, req.Method)
		if err != "" {
			response.Error = err

			return response, http.StatusBadRequest
		}

		node := int(id)
		response.Node = &node
		response.Found = &found
	}

	return response, http.StatusOK
}

func (s *Server) runRolelessQuery(response QueryResponse, req QueryRequest) (QueryResponse, int) {
	par := req.Method == methodPar
	if !par && req.Method != "" && req.Method != methodSeq {
		response.Error = "method " + req.Method + " not supported for op " + req.Op

		return response, http.StatusBadRequest
	}

	switch req.Op {
	case opMaxDepth:
		depth := s.tree.MaxDepth()
		if par {
			depth = s.parallel().MaxDepth()
		}

		response.Depth = &depth
	case opUniqueRoles:
		set := s.tree.UniqueRoles()
		if par {
			set = s.parallel().UniqueRoles()
		}

		response.Roles = roleNames(set)
	case opLeafCount:
		count := s.tree.LeafCount()
		response.Count = &count
	}

	return response, http.StatusOK
}

func (s *Server) howMany(target role.Role, method string) (int, string) {
	switch method {
	case "", methodSeq:
		return s.tree.HowMany(target), ""
	case methodRoleset:
		return s.tree.HowManyRoleset(target), ""
	case methodPar:
		return s.parallel().HowMany(target), ""
	case methodParRoleset:
		return s.parallel().HowManyRoleset(target), ""
	default:
		return 0, "method " + method + " not supported for op " + opHowMany
	}
}

func (s *Server) findFirst(target role.Role, method string) (atree.NodeID, bool, string) {
	var (
		id    atree.NodeID
		found bool
	)

	switch method {
	case "", methodSeq:
		id, found = s.tree.FindFirst(target)
	case methodRoleset:
		id, found = s.tree.FindFirstRoleset(target)
	case methodStack:
		id, found = s.tree.FindFirstStack(target)
	case methodPar:
		id, found = s.parallel().FindFirst(target)
	case methodParRoleset:
		id, found = s.parallel().FindFirstRoleset(target)
	default:
		return atree.NoNode, false, "method " + method + " not supported for op " + opFindFirst
	}

	return id, found, ""
}

func (s *Server) parallel() *atree.Parallel {
	return s.tree.Parallel(s.cfg.Engine.Workers, s.cfg.Engine.ForkThreshold)
}

func (s *Server) handleStats(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodGet {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	stats := s.tree.Stats()

	perRole := make(map[string]int, len(stats.PerRole))
	for _, tally := range stats.PerRole {
		perRole[tally.Role.String()] = tally.Count
	}

	names := make([]string, 0, len(stats.UniqueRoles))
	for _, r := range stats.UniqueRoles {
		names = append(names, r.String())
	}

	s.writeJSON(request.Context(), responseWriter, StatsResponse{
		Nodes:       stats.Nodes,
		Leaves:      stats.Leaves,
		MaxDepth:    stats.MaxDepth,
		MaxChildren: stats.MaxChildren,
		UniqueRoles: names,
		PerRole:     perRole,
	})
}

func (s *Server) handleHealthz(responseWriter http.ResponseWriter, request *http.Request) {
	s.writeJSON(request.Context(), responseWriter, map[string]string{"status": "ok"})
}

// writeJSON encodes the given value as JSON and writes it to the response writer.
func (s *Server) writeJSON(ctx context.Context, responseWriter http.ResponseWriter, value any) {
	responseWriter.Header().Set("Content-Type", "application/json")

	encodeErr := json.NewEncoder(responseWriter).Encode(value)
	if encodeErr != nil {
		s.logger.ErrorContext(ctx, "failed to encode JSON response", slog.Any("error", encodeErr))
	}
}

func roleNames(set role.Set) []string {
	names := make([]string, 0, set.Len())
	for r := range set.All() {
		names = append(names, r.String())
	}

	return names
}

package model

import "time"

// GraphNode is one resolved entity as consumed by a visualization layer.
type GraphNode struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         EntityType `json:"type"`
	Role         string     `json:"role,omitempty"`
	Aliases      []string   `json:"aliases"`
	MentionCount int        `json:"mention_count"`
	DocumentIDs  []string   `json:"document_ids"`
	Confidence   float64    `json:"confidence"`
}

// GraphEdge is one linkage between two nodes that cleared the
// visualization confidence cut.
type GraphEdge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Confidence float64        `json:"confidence"`
	Algorithm  MatchAlgorithm `json:"algorithm"`
}

type GraphMetadata struct {
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	Directed  bool      `json:"directed"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityGraphData is the renderer-facing linkage graph. Always undirected.
type EntityGraphData struct {
	Nodes    []GraphNode   `json:"nodes"`
	Edges    []GraphEdge   `json:"edges"`
	Metadata GraphMetadata `json:"metadata"`
}

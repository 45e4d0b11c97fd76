package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/similarity"
)

// entityView is the wire shape for an entity returned by the tools.
type entityView struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	Status   string `json:"status"`
	Priority int    `json:"priority"`
	GovID    string `json:"gov_id,omitempty"`
}

func view(e *entity.Entity) entityView {
	return entityView{
		ID:       e.ID,
		Type:     string(e.Kind),
		Title:    e.Title,
		Body:     e.Body,
		Status:   e.Status,
		Priority: e.Priority,
		GovID:    e.GovID,
	}
}

type createEntityInput struct {
	Type     string `json:"type" jsonschema:"description=Entity type: goal problem idea or action"`
	Title    string `json:"title" jsonschema:"description=Entity title (1-500 chars)"`
	Body     string `json:"body,omitempty" jsonschema:"description=Optional body text"`
	Priority string `json:"priority,omitempty" jsonschema:"description=Priority 0-4 or P<n> form (default P2)"`
	Status   string `json:"status,omitempty" jsonschema:"description=Initial status (default: first of the type's enum)"`
	Gov      string `json:"gov,omitempty" jsonschema:"description=Government id or slug to file under"`
}

type createEntityOutput struct {
	Entity entityView `json:"entity"`
}

type getEntityInput struct {
	ID string `json:"id" jsonschema:"description=Entity id"`
}

type getEntityOutput struct {
	Entity entityView `json:"entity"`
}

type listEntitiesInput struct {
	Type   string `json:"type,omitempty" jsonschema:"description=Filter by entity type"`
	Status string `json:"status,omitempty" jsonschema:"description=Filter by status"`
	Gov    string `json:"gov,omitempty" jsonschema:"description=Filter by government id or slug"`
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Maximum results"`
}

type listEntitiesOutput struct {
	Entities []entityView `json:"entities"`
}

type linkEntitiesInput struct {
	Source string `json:"source" jsonschema:"description=Source entity id"`
	Type   string `json:"type" jsonschema:"description=Relation type"`
	Target string `json:"target" jsonschema:"description=Target entity id"`
}

type linkEntitiesOutput struct {
	Linked bool `json:"linked"`
}

type classifyTextInput struct {
	Text string `json:"text" jsonschema:"description=Text to classify into an entity type"`
}

type classifyTextOutput struct {
	Type       string         `json:"type"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores"`
	Reasoning  string         `json:"reasoning"`
}

type insightEntry struct {
	Kind     string  `json:"kind"`
	Message  string  `json:"message"`
	Relation string  `json:"relation,omitempty"`
	Target   string  `json:"target,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

type entityInsightsInput struct {
	ID string `json:"id" jsonschema:"description=Entity id to generate insights for"`
}

type entityInsightsOutput struct {
	Insights []insightEntry `json:"insights"`
}

// registerTools registers the tracker tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_entity",
		Description: "Create a goal, problem, idea, or action",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input createEntityInput) (*mcp.CallToolResult, createEntityOutput, error) {
		if input.Title == "" {
			return nil, createEntityOutput{}, fmt.Errorf("title is required")
		}
		e, err := s.repo.Create(entity.CreateParams{
			Kind:     entity.Kind(input.Type),
			Title:    input.Title,
			Body:     input.Body,
			Priority: input.Priority,
			Status:   input.Status,
			Gov:      input.Gov,
		})
		if err != nil {
			return nil, createEntityOutput{}, fmt.Errorf("creating entity: %w", err)
		}
		return nil, createEntityOutput{Entity: view(e)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_entity",
		Description: "Fetch one entity by id",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input getEntityInput) (*mcp.CallToolResult, getEntityOutput, error) {
		e, err := s.repo.Find(input.ID)
		if err != nil {
			return nil, getEntityOutput{}, err
		}
		return nil, getEntityOutput{Entity: view(e)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_entities",
		Description: "List entities with optional type, status, and government filters",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input listEntitiesInput) (*mcp.CallToolResult, listEntitiesOutput, error) {
		entities, err := s.repo.List(entity.ListFilter{
			Kind:   entity.Kind(input.Type),
			Status: input.Status,
			Gov:    input.Gov,
			Limit:  input.Limit,
		})
		if err != nil {
			return nil, listEntitiesOutput{}, fmt.Errorf("listing entities: %w", err)
		}
		out := listEntitiesOutput{Entities: make([]entityView, 0, len(entities))}
		for i := range entities {
			out.Entities = append(out.Entities, view(&entities[i]))
		}
		return nil, out, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "link_entities",
		Description: "Add a typed relation edge between two entities",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input linkEntitiesInput) (*mcp.CallToolResult, linkEntitiesOutput, error) {
		if input.Source == "" || input.Target == "" || input.Type == "" {
			return nil, linkEntitiesOutput{}, fmt.Errorf("source, type, and target are required")
		}
		if _, err := s.engine.Link(input.Source, entity.RelationKind(input.Type), input.Target); err != nil {
			return nil, linkEntitiesOutput{}, fmt.Errorf("linking: %w", err)
		}
		return nil, linkEntitiesOutput{Linked: true}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "classify_text",
		Description: "Classify free text into an entity type using keyword heuristics",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input classifyTextInput) (*mcp.CallToolResult, classifyTextOutput, error) {
		c := similarity.Classify(input.Text)
		scores := make(map[string]int, len(c.Scores))
		for kind, score := range c.Scores {
			scores[string(kind)] = score
		}
		return nil, classifyTextOutput{
			Type:       string(c.Kind),
			Confidence: c.Confidence,
			Scores:     scores,
			Reasoning:  c.Reasoning,
		}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "entity_insights",
		Description: "Generate relation suggestions and duplicate warnings for an entity",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input entityInsightsInput) (*mcp.CallToolResult, entityInsightsOutput, error) {
		e, err := s.repo.Find(input.ID)
		if err != nil {
			return nil, entityInsightsOutput{}, err
		}
		pool, err := s.repo.All()
		if err != nil {
			return nil, entityInsightsOutput{}, fmt.Errorf("loading entities: %w", err)
		}
		out := entityInsightsOutput{}
		for _, in := range similarity.Insights(*e, pool) {
			if len(in.Suggestions) == 0 {
				out.Insights = append(out.Insights, insightEntry{Kind: in.Kind, Message: in.Message})
				continue
			}
			for _, sug := range in.Suggestions {
				out.Insights = append(out.Insights, insightEntry{
					Kind:     in.Kind,
					Message:  in.Message,
					Relation: string(sug.Kind),
					Target:   sug.Target.ID,
					Score:    sug.Score,
				})
			}
		}
		return nil, out, nil
	})
}

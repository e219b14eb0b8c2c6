// Package graph publishes computed rulings to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/faraid/storage"
	faraidvocab "github.com/c360studio/faraid/vocabulary/faraid"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

const tripleSource = "faraid.calculator"

// EntityIngestMessage is the message format for graph ingestion.
// Matches the format used by other semstreams components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishRuling publishes a completed ruling and its per-heir shares to
// the knowledge graph. A nil client skips publishing so offline compute
// paths degrade gracefully.
func PublishRuling(ctx context.Context, nc *natsclient.Client, ruling *storage.Ruling) error {
	if nc == nil {
		return nil
	}
	if ruling == nil || ruling.Report == nil {
		return fmt.Errorf("ruling has no report")
	}

	entityID := RulingEntityID(ruling.ID)
	now := time.Now()

	newTriple := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	report := ruling.Report
	triples := []message.Triple{
		newTriple(faraidvocab.RulingEstateValue, report.EstateValue),
		newTriple(faraidvocab.RulingStatus, string(report.Status)),
		newTriple(faraidvocab.RulingTotal, report.TotalFraction.String()),
		newTriple(faraidvocab.RulingHeirCount, len(report.Shares)),
		newTriple(faraidvocab.RulingComputedAt, ruling.CreatedAt.Format(time.RFC3339)),
	}

	// One triple group per heir category, keyed by a share-scoped subject
	// so per-heir facts stay queryable independently of the ruling node.
	for i, share := range report.Shares {
		shareID := ShareEntityID(ruling.ID, i)
		shareTriple := func(predicate string, object any) message.Triple {
			t := newTriple(predicate, object)
			t.Subject = shareID
			return t
		}
		triples = append(triples,
			shareTriple(faraidvocab.ShareHeir, share.Name),
			shareTriple(faraidvocab.ShareCount, share.Count),
			shareTriple(faraidvocab.ShareClassification, string(share.Classification)),
			shareTriple(faraidvocab.ShareStatus, string(share.Status)),
			shareTriple(faraidvocab.ShareFraction, share.Fraction.String()),
			shareTriple(faraidvocab.ShareAmount, share.Amount),
		)
	}

	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal ruling entity: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish ruling entity: %w", err)
	}

	return nil
}

// RulingEntityID generates a consistent graph entity ID for a ruling.
// Format: faraid.local.ruling.<id>
func RulingEntityID(id string) string {
	return fmt.Sprintf("faraid.local.ruling.%s", id)
}

// ShareEntityID generates a consistent graph entity ID for one share
// within a ruling, indexed by its position in the report.
// Format: faraid.local.ruling.<id>.share.<index>
func ShareEntityID(rulingID string, index int) string {
	return "faraid.local.ruling." + rulingID + ".share." + strconv.Itoa(index)
}

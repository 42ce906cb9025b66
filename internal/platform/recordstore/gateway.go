package recordstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// GatewayError is an application-level failure reported by the platform
// (success:false with a message) or a transport failure, tagged with the
// operation and collection it came from.
type GatewayError struct {
	Op      string
	Table   string
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
}

// Gateway is the single point of access to one record collection. It binds
// the client to the collection name and its field projection, so callers
// never repeat either.
type Gateway struct {
	client Client
	table  string
	fields []string
	log    zerolog.Logger
}

func NewGateway(client Client, table string, fields []string, log zerolog.Logger) *Gateway {
	return &Gateway{
		client: client,
		table:  table,
		fields: fields,
		log:    log.With().Str("table", table).Logger(),
	}
}

// Table returns the bound collection name.
func (g *Gateway) Table() string { return g.table }

// List fetches all records matching the optional filter tree, projected to
// the gateway's field set.
func (g *Gateway) List(ctx context.Context, where ...WhereGroup) ([]Record, error) {
	resp, err := g.client.FetchRecords(ctx, g.table, Query{Fields: g.fields, Where: where})
	if err != nil {
		g.log.Error().Err(err).Msg("fetch records failed")
		return nil, &GatewayError{Op: "fetch", Table: g.table, Message: err.Error()}
	}
	if !resp.Success {
		g.log.Error().Str("message", resp.Message).Msg("fetch records rejected")
		return nil, &GatewayError{Op: "fetch", Table: g.table, Message: resp.Message}
	}
	return resp.Data, nil
}

// GetByID fetches a single record. Not-found and every error alike yield
// nil; errors are logged here and never returned to the caller.
func (g *Gateway) GetByID(ctx context.Context, id int) Record {
	resp, err := g.client.GetRecordByID(ctx, g.table, id, Query{Fields: g.fields})
	if err != nil {
		g.log.Error().Err(err).Int("id", id).Msg("get record failed")
		return nil
	}
	if !resp.Success {
		g.log.Debug().Str("message", resp.Message).Int("id", id).Msg("get record returned no data")
		return nil
	}
	return resp.Data
}

// Create inserts a single record and returns the batch results. Partial
// failure within the batch is reported per record.
func (g *Gateway) Create(ctx context.Context, fields Fields) ([]RecordResult, error) {
	resp, err := g.client.CreateRecords(ctx, g.table, []Fields{fields})
	if err != nil {
		g.log.Error().Err(err).Msg("create record failed")
		return nil, &GatewayError{Op: "create", Table: g.table, Message: err.Error()}
	}
	if !resp.Success {
		g.log.Error().Str("message", resp.Message).Msg("create record rejected")
		return nil, &GatewayError{Op: "create", Table: g.table, Message: resp.Message}
	}
	return resp.Results, nil
}

// Update forwards exactly the supplied fields, plus the target id, and
// returns the batch results.
func (g *Gateway) Update(ctx context.Context, id int, fields Fields) ([]RecordResult, error) {
	payload := Fields{"Id": id}
	for k, v := range fields {
		payload[k] = v
	}
	resp, err := g.client.UpdateRecords(ctx, g.table, []Fields{payload})
	if err != nil {
		g.log.Error().Err(err).Int("id", id).Msg("update record failed")
		return nil, &GatewayError{Op: "update", Table: g.table, Message: err.Error()}
	}
	if !resp.Success {
		g.log.Error().Str("message", resp.Message).Int("id", id).Msg("update record rejected")
		return nil, &GatewayError{Op: "update", Table: g.table, Message: resp.Message}
	}
	return resp.Results, nil
}

// Delete removes a single record and returns the batch results.
func (g *Gateway) Delete(ctx context.Context, id int) ([]RecordResult, error) {
	resp, err := g.client.DeleteRecords(ctx, g.table, []int{id})
	if err != nil {
		g.log.Error().Err(err).Int("id", id).Msg("delete record failed")
		return nil, &GatewayError{Op: "delete", Table: g.table, Message: err.Error()}
	}
	if !resp.Success {
		g.log.Error().Str("message", resp.Message).Int("id", id).Msg("delete record rejected")
		return nil, &GatewayError{Op: "delete", Table: g.table, Message: resp.Message}
	}
	return resp.Results, nil
}

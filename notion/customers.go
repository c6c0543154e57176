package notion

import (
	"context"

	"go.uber.org/zap"

	"beautybook/models"
)

// CustomerRepo writes customer records. Callers treat it as best-effort: a
// failed customer write never blocks a reservation.
type CustomerRepo struct {
	client     *Client
	databaseID string
	logger     *zap.Logger
}

func NewCustomerRepo(client *Client, databaseID string, logger *zap.Logger) *CustomerRepo {
	return &CustomerRepo{client: client, databaseID: databaseID, logger: logger}
}

// Configured reports whether writes can reach the remote collection.
func (r *CustomerRepo) Configured() bool {
	return r.client.Configured() && r.databaseID != ""
}

// CreateCustomer writes a customer record and returns the remote record id.
func (r *CustomerRepo) CreateCustomer(ctx context.Context, rec models.CustomerRecord) (string, error) {
	schema, err := r.client.GetSchema(ctx, r.databaseID)
	if err != nil {
		return "", err
	}

	data := map[string]any{
		"Customer Name":         rec.Name,
		"Email":                 rec.Email,
		"Phone Number":          rec.Phone,
		"Customer Type":         rec.CustomerType,
		"Communication History": rec.Notes,
	}

	page, err := r.client.CreatePage(ctx, r.databaseID, BuildProperties(schema, data, r.logger))
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

package seed

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"gorm.io/gorm"

	"github.com/nurpe/dealflow/internal/model"
)

type ClientData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

type SalesRepData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Data struct {
	Clients   []ClientData   `json:"clients"`
	SalesReps []SalesRepData `json:"salesReps"`
}

var (
	once   sync.Once
	cached *Data
)

// Load reads the seed file at most once per process. The source is
// immutable for the process lifetime, so the cache never invalidates.
// A broken or missing file falls back to compiled-in data.
func Load(path string) *Data {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cached = fallbackData()
			return
		}
		var data Data
		if err := json.Unmarshal(raw, &data); err != nil {
			cached = fallbackData()
			return
		}
		cached = &data
	})
	return cached
}

func fallbackData() *Data {
	return &Data{
		Clients: []ClientData{
			{Name: "Acme Corp", Email: "contact@acmecorp.com", Phone: "123-456-7890", Address: "123 Main St, City", Company: "Acme Corp"},
			{Name: "Globex Industries", Email: "info@globex.com", Phone: "987-654-3210", Address: "456 Oak Ave, Town", Company: "Globex Industries"},
			{Name: "Stark Enterprises", Email: "hello@stark.com", Phone: "555-123-4567", Address: "789 Pine St, Village", Company: "Stark Enterprises"},
			{Name: "Wayne Enterprises", Email: "business@wayne.com", Phone: "222-333-4444", Address: "101 Elm St, County", Company: "Wayne Enterprises"},
			{Name: "Umbrella Corporation", Email: "support@umbrella.com", Phone: "777-888-9999", Address: "202 Maple Dr, State", Company: "Umbrella Corporation"},
		},
		SalesReps: []SalesRepData{
			{Name: "John Doe", Email: "john.doe@dealflow.local"},
			{Name: "Jane Smith", Email: "jane.smith@dealflow.local"},
			{Name: "Robert Johnson", Email: "robert.johnson@dealflow.local"},
			{Name: "Emily Davis", Email: "emily.davis@dealflow.local"},
			{Name: "Michael Brown", Email: "michael.brown@dealflow.local"},
		},
	}
}

// Apply upserts the reference rows keyed by email. Existing rows are left
// untouched, so re-running on boot is safe.
func Apply(ctx context.Context, db *gorm.DB, data *Data) error {
	for _, c := range data.Clients {
		var existing model.Client
		err := db.WithContext(ctx).First(&existing, "email = ?", c.Email).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		client := model.Client{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
			Company: c.Company,
		}
		if err := db.WithContext(ctx).Create(&client).Error; err != nil {
			return err
		}
	}

	for _, r := range data.SalesReps {
		var existing model.SalesRepresentative
		err := db.WithContext(ctx).First(&existing, "email = ?", r.Email).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rep := model.SalesRepresentative{Name: r.Name, Email: r.Email}
		if err := db.WithContext(ctx).Create(&rep).Error; err != nil {
			return err
		}
	}

	return nil
}

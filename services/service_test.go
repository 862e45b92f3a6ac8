package services

import (
	"context"
	"testing"
	"time"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory store with foreign keys enforced,
// so cascade behavior matches production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive for the test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.IPO{},
		&models.Document{},
	))

	return db
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestCompanyCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Acme Industries", Logo: strPtr("/uploads/logos/logo-1.png")}
	require.NoError(t, svc.Create(ctx, company))
	require.NotZero(t, company.ID)
	require.False(t, company.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Acme Industries", got.Name)
	require.NotNil(t, got.Logo)
	require.Equal(t, "/uploads/logos/logo-1.png", *got.Logo)
}

func TestCompanyGetByIDAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)

	got, err := svc.GetByID(context.Background(), 9999)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCompanyListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := &models.Company{Name: "Older Co", CreatedAt: base}
	newer := &models.Company{Name: "Newer Co", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, svc.Create(ctx, older))
	require.NoError(t, svc.Create(ctx, newer))

	companies, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	require.Equal(t, "Newer Co", companies[0].Name)
	require.Equal(t, "Older Co", companies[1].Name)
}

func TestCompanyWithIPOs(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Issuer Ltd"}
	require.NoError(t, companies.Create(ctx, company))

	ipo := &models.IPO{CompanyID: company.ID, Status: models.StatusOpen}
	require.NoError(t, ipos.Create(ctx, ipo))

	got, err := companies.GetWithIPOs(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, company.ID, got.Company.ID)
	require.Len(t, got.IPOs, 1)
	require.Equal(t, ipo.ID, got.IPOs[0].ID)

	absent, err := companies.GetWithIPOs(ctx, company.ID+1000)
	require.NoError(t, err)
	require.Nil(t, absent)
}

func TestCompanyUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Before Rename", Logo: strPtr("/uploads/logos/a.png")}
	require.NoError(t, svc.Create(ctx, company))

	// An empty change set leaves every field unchanged.
	unchanged, err := svc.Update(ctx, company.ID, map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, unchanged)
	require.Equal(t, "Before Rename", unchanged.Name)
	require.NotNil(t, unchanged.Logo)

	updated, err := svc.Update(ctx, company.ID, map[string]any{"company_name": "After Rename"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "After Rename", updated.Name)
	require.NotNil(t, updated.Logo)
	require.Equal(t, "/uploads/logos/a.png", *updated.Logo)
}

func TestCompanyUpdateAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)

	updated, err := svc.Update(context.Background(), 4242, map[string]any{"company_name": "Ghost"})
	require.NoError(t, err)
	require.Nil(t, updated)
}

func TestCompanyDeleteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCompanyService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Short Lived"}
	require.NoError(t, svc.Create(ctx, company))

	deleted, err := svc.Delete(ctx, company.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = svc.Delete(ctx, company.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	docs := NewDocumentService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Cascade Co"}
	require.NoError(t, companies.Create(ctx, company))

	ipo := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming}
	require.NoError(t, ipos.Create(ctx, ipo))

	doc := &models.Document{IPOID: ipo.ID, RHPPdf: strPtr("/uploads/documents/rhp.pdf")}
	require.NoError(t, docs.Create(ctx, doc))

	deleted, err := companies.Delete(ctx, company.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	goneIPO, err := ipos.GetByID(ctx, ipo.ID)
	require.NoError(t, err)
	require.Nil(t, goneIPO)

	remaining, err := docs.GetByIPOID(ctx, ipo.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestIPOCreateRequiresCompany(t *testing.T) {
	db := setupTestDB(t)
	ipos := NewIPOService(db)

	err := ipos.Create(context.Background(), &models.IPO{CompanyID: 777, Status: models.StatusUpcoming})
	require.Error(t, err)
}

func TestIPOCreateAndGetJoined(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	docs := NewDocumentService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Joined Co"}
	require.NoError(t, companies.Create(ctx, company))

	ipo := &models.IPO{
		CompanyID:    company.ID,
		PriceBand:    strPtr("100-120"),
		IssueSize:    strPtr("500 Cr"),
		IssueType:    strPtr("Book Built"),
		Status:       models.StatusListed,
		IPOPrice:     decPtr("118.00"),
		ListingPrice: decPtr("145.50"),
		ListingGain:  decPtr("23.31"),
	}
	require.NoError(t, ipos.Create(ctx, ipo))

	doc := &models.Document{IPOID: ipo.ID, DRHPPdf: strPtr("/uploads/documents/drhp.pdf")}
	require.NoError(t, docs.Create(ctx, doc))

	got, err := ipos.GetByID(ctx, ipo.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Company)
	require.Equal(t, "Joined Co", got.Company.Name)
	require.Len(t, got.Documents, 1)
	require.Equal(t, doc.ID, got.Documents[0].ID)
	require.NotNil(t, got.IPOPrice)
	require.True(t, got.IPOPrice.Equal(decimal.RequireFromString("118.00")))
	require.True(t, got.ListingGain.Equal(decimal.RequireFromString("23.31")))
}

func TestIPOListByStatusNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Filter Co"}
	require.NoError(t, companies.Create(ctx, company))

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	first := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming, CreatedAt: base}
	second := &models.IPO{CompanyID: company.ID, Status: models.StatusOpen, CreatedAt: base.Add(time.Hour)}
	third := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, ipos.Create(ctx, first))
	require.NoError(t, ipos.Create(ctx, second))
	require.NoError(t, ipos.Create(ctx, third))

	upcoming, err := ipos.GetByStatus(ctx, models.StatusUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	require.Equal(t, third.ID, upcoming[0].ID)
	require.Equal(t, first.ID, upcoming[1].ID)
	for _, ipo := range upcoming {
		require.Equal(t, models.StatusUpcoming, ipo.Status)
	}

	all, err := ipos.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, third.ID, all[0].ID)
	require.Equal(t, first.ID, all[2].ID)

	none, err := ipos.GetByStatus(ctx, "Withdrawn")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestIPOUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Update Co"}
	require.NoError(t, companies.Create(ctx, company))

	ipo := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming, PriceBand: strPtr("90-95")}
	require.NoError(t, ipos.Create(ctx, ipo))

	updated, err := ipos.Update(ctx, ipo.ID, map[string]any{"status": models.StatusOpen})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, models.StatusOpen, updated.Status)
	require.NotNil(t, updated.PriceBand)
	require.Equal(t, "90-95", *updated.PriceBand)

	// Empty change set: nothing moves.
	same, err := ipos.Update(ctx, ipo.ID, map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, same)
	require.Equal(t, models.StatusOpen, same.Status)

	absent, err := ipos.Update(ctx, ipo.ID+500, map[string]any{"status": models.StatusClosed})
	require.NoError(t, err)
	require.Nil(t, absent)
}

func TestDocumentsByIPOInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	docs := NewDocumentService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Docs Co"}
	require.NoError(t, companies.Create(ctx, company))
	ipo := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming}
	require.NoError(t, ipos.Create(ctx, ipo))

	first := &models.Document{IPOID: ipo.ID, RHPPdf: strPtr("/uploads/documents/a.pdf")}
	second := &models.Document{IPOID: ipo.ID, DRHPPdf: strPtr("/uploads/documents/b.pdf")}
	require.NoError(t, docs.Create(ctx, first))
	require.NoError(t, docs.Create(ctx, second))

	got, err := docs.GetByIPOID(ctx, ipo.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first.ID, got[0].ID)
	require.Equal(t, second.ID, got[1].ID)
}

func TestDocumentUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	companies := NewCompanyService(db)
	ipos := NewIPOService(db)
	docs := NewDocumentService(db)
	ctx := context.Background()

	company := &models.Company{Name: "Doc CRUD Co"}
	require.NoError(t, companies.Create(ctx, company))
	ipo := &models.IPO{CompanyID: company.ID, Status: models.StatusUpcoming}
	require.NoError(t, ipos.Create(ctx, ipo))

	doc := &models.Document{IPOID: ipo.ID}
	require.NoError(t, docs.Create(ctx, doc))

	updated, err := docs.Update(ctx, doc.ID, map[string]any{"rhp_pdf": "/uploads/documents/new.pdf"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.RHPPdf)
	require.Equal(t, "/uploads/documents/new.pdf", *updated.RHPPdf)

	deleted, err := docs.Delete(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = docs.Delete(ctx, doc.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestUserLookup(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	user := &models.User{Username: "admin", Password: "hashed-secret"}
	require.NoError(t, users.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byName, err := users.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, user.ID, byName.ID)

	byID, err := users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "admin", byID.Username)

	missing, err := users.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, missing)

	// Usernames are unique.
	err = users.CreateUser(ctx, &models.User{Username: "admin", Password: "other"})
	require.Error(t, err)
}

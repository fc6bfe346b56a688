package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/dealflow/internal/auth"
	"github.com/nurpe/dealflow/internal/excel"
	"github.com/nurpe/dealflow/internal/http/middleware"
	"github.com/nurpe/dealflow/internal/model"
	"github.com/nurpe/dealflow/internal/pdf"
	"github.com/nurpe/dealflow/internal/repository"
	"github.com/nurpe/dealflow/internal/service"
)

func setupRouter(t *testing.T, authMiddleware gin.HandlerFunc) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Client{}, &model.SalesRepresentative{}, &model.Offer{}, &model.Contract{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	offerRepo := repository.NewOfferRepository(db)
	contractRepo := repository.NewContractRepository(db)
	excelGen := excel.NewGenerator()
	pdfGen := pdf.NewGenerator()

	handler := NewHandler(
		service.NewOfferService(offerRepo, excelGen),
		service.NewContractService(contractRepo, offerRepo, excelGen, pdfGen),
		service.NewReferenceService(repository.NewClientRepository(db), repository.NewSalesRepRepository(db)),
		zerolog.Nop(),
	)
	return NewRouter(handler, authMiddleware, "test"), db
}

func seedReferences(t *testing.T, db *gorm.DB) (model.Client, model.SalesRepresentative) {
	t.Helper()
	client := model.Client{Name: "Acme Corp", Email: "contact@acmecorp.com"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	rep := model.SalesRepresentative{Name: "John Doe", Email: "john.doe@dealflow.local"}
	if err := db.Create(&rep).Error; err != nil {
		t.Fatalf("rep: %v", err)
	}
	return client, rep
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func offerBody(client model.Client, rep model.SalesRepresentative) string {
	return fmt.Sprintf(`{
		"title": "Audit",
		"description": "Annual security audit",
		"clientId": %q,
		"salesRepresentativeId": %q,
		"validFrom": "2025-01-01",
		"validUntil": "2025-02-01",
		"amount": 5000,
		"status": "draft"
	}`, client.ID, rep.ID)
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, nil)
	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestOfferLifecycle(t *testing.T) {
	router, db := setupRouter(t, nil)
	client, rep := seedReferences(t, db)

	// create
	w := doJSON(t, router, http.MethodPost, "/offers", offerBody(client, rep))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("missing id in response: %v", created)
	}

	// roundtrip
	w = doJSON(t, router, http.MethodGet, "/offers/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	fetched := decode(t, w)
	if fetched["title"] != "Audit" || fetched["amount"] != float64(5000) || fetched["status"] != "draft" {
		t.Errorf("roundtrip mismatch: %v", fetched)
	}
	if fetched["client"] == nil || fetched["salesRepresentative"] == nil {
		t.Errorf("expected expanded references: %v", fetched)
	}

	// invalid status value
	w = doJSON(t, router, http.MethodPatch, "/offers/"+id+"/status", `{"status":"pending"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status: expected 400, got %d", w.Code)
	}

	// missing status field
	w = doJSON(t, router, http.MethodPatch, "/offers/"+id+"/status", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing status: expected 400, got %d", w.Code)
	}

	// convert before acceptance
	w = doJSON(t, router, http.MethodPost, "/offers/"+id+"/convert", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("convert draft: expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	// accept, then convert
	w = doJSON(t, router, http.MethodPatch, "/offers/"+id+"/status", `{"status":"accepted"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodPost, "/offers/"+id+"/convert", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("convert: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	converted := decode(t, w)
	contract, _ := converted["contract"].(map[string]any)
	offer, _ := converted["offer"].(map[string]any)
	if contract == nil || offer == nil {
		t.Fatalf("expected contract and offer in response: %v", converted)
	}
	if contract["amount"] != float64(5000) || contract["offerId"] != id {
		t.Errorf("unexpected contract: %v", contract)
	}
	if offer["status"] != "accepted" {
		t.Errorf("offer should stay accepted: %v", offer)
	}

	// second conversion conflicts
	w = doJSON(t, router, http.MethodPost, "/offers/"+id+"/convert", "")
	if w.Code != http.StatusConflict {
		t.Errorf("second convert: expected 409, got %d", w.Code)
	}

	// delete unknown id
	w = doJSON(t, router, http.MethodDelete, "/offers/00000000-0000-0000-0000-000000000001", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing: expected 404, got %d", w.Code)
	}
}

func TestOfferValidationResponses(t *testing.T) {
	router, db := setupRouter(t, nil)
	_, rep := seedReferences(t, db)

	// binding failure: required field absent
	w := doJSON(t, router, http.MethodPost, "/offers", fmt.Sprintf(`{
		"description": "no title",
		"clientId": "not-a-uuid",
		"salesRepresentativeId": %q,
		"validFrom": "2025-01-01",
		"validUntil": "2025-02-01"
	}`, rep.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/offers?status=bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad filter: expected 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/offers/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestContractCloseEndpoint(t *testing.T) {
	router, db := setupRouter(t, nil)
	client, rep := seedReferences(t, db)

	body := fmt.Sprintf(`{
		"title": "Maintenance contract",
		"description": "Ongoing maintenance",
		"clientId": %q,
		"responsiblePersonId": %q,
		"startDate": "2025-03-01",
		"endDate": "2026-03-01",
		"paymentTerms": "Net 30",
		"amount": 12000,
		"status": "suspended"
	}`, client.ID, rep.ID)
	w := doJSON(t, router, http.MethodPost, "/contracts", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	id, _ := decode(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPut, "/contracts/"+id+"/close", "")
	if w.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if closed := decode(t, w); closed["status"] != "completed" {
		t.Errorf("expected completed, got %v", closed["status"])
	}

	// illegal transition is rejected at the API edge
	w = doJSON(t, router, http.MethodPatch, "/contracts/"+id+"/status", `{"status":"active"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("completed -> active: expected 400, got %d", w.Code)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/clients", `{"name":"Globex","email":"info@globex.com","phone":"1","address":"a","company":"Globex"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	// duplicate email conflicts
	w = doJSON(t, router, http.MethodPost, "/clients", `{"name":"Globex 2","email":"info@globex.com"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/clients", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list clients: expected 200, got %d", w.Code)
	}
	var clients []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decode clients: %v", err)
	}
	if len(clients) != 1 {
		t.Errorf("expected 1 client, got %d", len(clients))
	}

	w = doJSON(t, router, http.MethodPost, "/sales-reps", `{"name":"Jane Smith","email":"jane@dealflow.local"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create rep: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	repID, _ := decode(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodDelete, "/sales-reps/"+repID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete rep: expected 200, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/sales-reps/"+repID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted rep: expected 404, got %d", w.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	router, db := setupRouter(t, nil)
	client, rep := seedReferences(t, db)

	w := doJSON(t, router, http.MethodPost, "/offers", offerBody(client, rep))
	if w.Code != http.StatusCreated {
		t.Fatalf("create offer: expected 201, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/offers/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export offers: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("expected non-empty export")
	}
}

func TestContractDocumentEndpoint(t *testing.T) {
	router, db := setupRouter(t, nil)
	client, rep := seedReferences(t, db)

	body := fmt.Sprintf(`{
		"title": "Maintenance contract",
		"description": "Ongoing maintenance",
		"clientId": %q,
		"responsiblePersonId": %q,
		"startDate": "2025-03-01",
		"endDate": "2026-03-01",
		"paymentTerms": "Net 45",
		"amount": 9000
	}`, client.ID, rep.ID)
	w := doJSON(t, router, http.MethodPost, "/contracts", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	id, _ := decode(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodGet, "/contracts/"+id+"/document", "")
	if w.Code != http.StatusOK {
		t.Fatalf("document: expected 200, got %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected PDF response")
	}
}

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	parser := auth.NewParser(secret)
	router, _ := setupRouter(t, middleware.Auth(parser))

	w := doJSON(t, router, http.MethodGet, "/offers", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	// health stays open
	w = doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", w.Code)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: "u1",
		Role:   "manager",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/offers", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token: expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/offers", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", w.Code)
	}
}

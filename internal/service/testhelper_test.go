package service

import (
	"context"
	"testing"

	"material-store/internal/model"
	"material-store/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. A single
// connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Material{},
		&model.PurchaseRequest{},
		&model.PurchaseItem{},
		&model.DistributionRequest{},
		&model.DistributionItem{},
		&model.DraftItem{},
		&model.VerificationRequest{},
		&model.VerificationItem{},
		&model.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// env bundles every repository and service over one test database.
type env struct {
	db *gorm.DB

	userRepo         repository.UserRepository
	materialRepo     repository.MaterialRepository
	purchaseRepo     repository.PurchaseRepository
	distributionRepo repository.DistributionRepository
	draftRepo        repository.DraftRepository
	verificationRepo repository.VerificationRepository
	auditRepo        repository.AuditRepository

	users         UserService
	materials     MaterialService
	ledger        LedgerService
	purchases     PurchaseService
	distributions DistributionService
	verifications VerificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)

	txManager := repository.NewTransactionManager(db)
	e := &env{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		materialRepo:     repository.NewMaterialRepository(db),
		purchaseRepo:     repository.NewPurchaseRepository(db),
		distributionRepo: repository.NewDistributionRepository(db),
		draftRepo:        repository.NewDraftRepository(db),
		verificationRepo: repository.NewVerificationRepository(db),
		auditRepo:        repository.NewAuditRepository(db),
	}
	e.users = NewUserService(e.userRepo, e.auditRepo, txManager)
	e.materials = NewMaterialService(e.materialRepo, e.auditRepo, txManager)
	e.ledger = NewLedgerService(e.purchaseRepo, e.distributionRepo, e.draftRepo)
	e.purchases = NewPurchaseService(e.purchaseRepo, e.materialRepo, e.auditRepo, txManager, nil)
	e.distributions = NewDistributionService(e.distributionRepo, e.purchaseRepo, e.materialRepo, e.draftRepo, e.auditRepo, txManager, nil)
	e.verifications = NewVerificationService(e.verificationRepo, e.distributionRepo, e.auditRepo, txManager, nil)
	return e
}

func (e *env) addUser(t *testing.T, role string) Actor {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := &model.User{
		UniqueID: "EMP-" + uuid.NewString()[:8],
		Name:     "Test " + role,
		Email:    uuid.NewString()[:8] + "@store.test",
		Password: string(hashed),
		Role:     role,
	}
	if err := e.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create %s: %v", role, err)
	}
	return Actor{ID: user.ID, Role: role}
}

func (e *env) addMaterial(t *testing.T, name, typ, info string) *model.Material {
	t.Helper()
	material := &model.Material{Name: name, Type: typ, Info: info}
	if err := e.materialRepo.Create(context.Background(), material); err != nil {
		t.Fatalf("create material %s: %v", name, err)
	}
	return material
}

// approvedPurchase submits a purchase request and approves every line,
// yielding stock the distribution tests can draw from.
func (e *env) approvedPurchase(t *testing.T, caseworker, approver Actor, input SubmitPurchaseInput) *model.PurchaseRequest {
	t.Helper()
	ctx := context.Background()

	request, err := e.purchases.Submit(ctx, caseworker, input)
	if err != nil {
		t.Fatalf("submit purchase: %v", err)
	}

	decisions := make([]ItemDecision, 0, len(request.Items))
	for _, item := range request.Items {
		decisions = append(decisions, ItemDecision{LineNo: item.LineNo, Status: model.ItemApproved})
	}
	request, err = e.purchases.DecideItems(ctx, approver, request.ID, DecideItemsInput{Decisions: decisions})
	if err != nil {
		t.Fatalf("approve purchase: %v", err)
	}
	return request
}

package inventory

import (
	"testing"

	"github.com/stocklot-app/stocklot-backend/pkg/db"
	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.InventoryRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name string, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Quantity: quantity, Category: "uncategorized"}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func productQuantity(t *testing.T, conn *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := conn.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.Quantity
}

func recordCount(t *testing.T, conn *gorm.DB, productID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&models.InventoryRecord{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	return count
}

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}

package db

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sessioncart/internal/config"
	"sessioncart/internal/domain/model"
)

// テスト用のインメモリSQLite。
// :memory: は接続ごとに別DBになるので接続数は1に固定する。
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := Open(config.Config{
		DBDriver:       config.DriverSQLite,
		SQLitePath:     ":memory:",
		DBMaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := Migrate(gormDB); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	t.Cleanup(func() { _ = Close(gormDB) })
	return gormDB
}

// 商品を登録する（同じIDなら価格と在庫を上書き）。
// 商品はこのサービスの外で管理されるのでテストからだけ書く。
func SeedProduct(t testing.TB, gormDB *gorm.DB, p model.Product) {
	t.Helper()

	err := gormDB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "inventory"}),
		}).
		Create(&p).Error
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

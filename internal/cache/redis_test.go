package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	SetCached(ctx, QuotationListKey, []byte("[]"), time.Minute)
	if _, ok := GetCached(ctx, QuotationListKey); ok {
		t.Fatal("disabled cache returned a hit")
	}
	InvalidateQuotationCaches(ctx, "Q1")
	InvalidateAll(ctx)
	if IsHealthy() {
		t.Fatal("disabled cache reported healthy")
	}
}

func TestQuotationKey(t *testing.T) {
	if got := QuotationKey("QTN-23-12-2023-0001"); got != "quotation:QTN-23-12-2023-0001" {
		t.Fatalf("QuotationKey = %q", got)
	}
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"homestay/dto"

	"github.com/redis/go-redis/v9"
)

// Bộ lọc tìm kiếm gần nhất của một phiên, để lần tìm sau chỉ cần bổ sung
// điều kiện mới thay vì nhập lại từ đầu

func SaveLastFilters(ctx context.Context, rdb *redis.Client, key string, filters *dto.SearchFilters) error {
	b, _ := json.Marshal(filters)
	return rdb.Set(ctx, "last_filters:"+key, b, 30*time.Minute).Err()
}

func GetLastFilters(ctx context.Context, rdb *redis.Client, key string) (*dto.SearchFilters, error) {
	val, err := rdb.Get(ctx, "last_filters:"+key).Result()
	if err != nil {
		return nil, err
	}
	var filters dto.SearchFilters
	json.Unmarshal([]byte(val), &filters)
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, "last_filters:"+key).Err()
}

// MergeFilters gộp yêu cầu cũ với yêu cầu mới, giá trị mới được ưu tiên
func MergeFilters(old *dto.SearchFilters, next *dto.SearchFilters) *dto.SearchFilters {
	next.Type = orString(next.Type, old.Type)
	next.Province = orString(next.Province, old.Province)
	next.District = orString(next.District, old.District)
	next.Name = orString(next.Name, old.Name)
	next.NumBed = orString(next.NumBed, old.NumBed)
	next.NumToilet = orString(next.NumToilet, old.NumToilet)
	next.People = orString(next.People, old.People)
	next.Search = orString(next.Search, old.Search)

	// Đổi khoảng ngày thì bỏ cả hai đầu cũ, tránh khoảng ngược
	if next.FromDate != "" || next.ToDate != "" {
		next.FromDate = orString(next.FromDate, "")
		next.ToDate = orString(next.ToDate, "")
	} else {
		next.FromDate = old.FromDate
		next.ToDate = old.ToDate
	}
	return next
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

package application

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/catalog/domain"
)

// CatalogQueryService 目录查询服务
type CatalogQueryService struct {
	repo domain.Repository
}

// NewCatalogQueryService 创建目录查询服务实例
func NewCatalogQueryService(repo domain.Repository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// GetPrograms 获取项目列表
func (s *CatalogQueryService) GetPrograms(ctx context.Context) ([]domain.Program, error) {
	return s.repo.Programs(ctx)
}

// GetEvents 获取活动列表
func (s *CatalogQueryService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.Events(ctx)
}

// GetEvent 根据 ID 获取活动
func (s *CatalogQueryService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.EventByID(ctx, id)
}

// GetProducts 获取商品列表
func (s *CatalogQueryService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Products(ctx)
}

// GetProduct 根据 ID 获取商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.ProductByID(ctx, id)
}

// GetArtists 获取艺术家列表
func (s *CatalogQueryService) GetArtists(ctx context.Context) ([]domain.Artist, error) {
	return s.repo.Artists(ctx)
}

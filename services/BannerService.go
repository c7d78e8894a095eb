package services

import (
	"bookStore/entities"
	"bookStore/models"
	"bookStore/repository"
)

type BannerService struct {
	br repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{br: bannerRepo}
}

func (bs *BannerService) GetBanners() ([]entities.Banner, error) {
	return bs.br.GetBanners()
}

func (bs *BannerService) CreateBanner(banner entities.Banner) (entities.Banner, error) {
	if banner.Title == "" || banner.Image == "" {
		return entities.Banner{}, models.ErrBadRequest
	}
	return bs.br.CreateBanner(banner)
}

func (bs *BannerService) UpdateBanner(id string, banner entities.Banner) error {
	if banner.Title == "" || banner.Image == "" {
		return models.ErrBadRequest
	}
	return bs.br.UpdateBanner(id, banner)
}

func (bs *BannerService) DeleteBanner(id string) error {
	return bs.br.DeleteBanner(id)
}

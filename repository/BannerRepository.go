package repository

import (
	"errors"

	"bookStore/entities"
)

type BannerRepository interface {
	GetBanners() ([]entities.Banner, error)
	CreateBanner(banner entities.Banner) (entities.Banner, error)
	UpdateBanner(id string, banner entities.Banner) error
	DeleteBanner(id string) error
}

type BannerRepo struct {
	store *RemoteStore
}

func NewBannerRepository(store *RemoteStore) (BannerRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	return &BannerRepo{store: store}, nil
}

func (b *BannerRepo) GetBanners() (banners []entities.Banner, err error) {
	banners = []entities.Banner{}
	err = b.store.Get("/banners", &banners)
	return
}

func (b *BannerRepo) CreateBanner(banner entities.Banner) (created entities.Banner, err error) {
	err = b.store.Post("/banners", banner, &created)
	return
}

func (b *BannerRepo) UpdateBanner(id string, banner entities.Banner) error {
	banner.Id = id
	return b.store.Put("/banners/"+id, banner, nil)
}

func (b *BannerRepo) DeleteBanner(id string) error {
	return b.store.Delete("/banners/" + id)
}

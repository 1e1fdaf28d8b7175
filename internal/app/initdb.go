package app

import (
	"time"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/pkg/common"
	"go.uber.org/zap"
)

// checkProducts seeds the demo catalog on an empty products table
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "UNIFACTOR Mens Running Shoes", Category: "Footwear", Cost: 50, Rating: 5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/66ce30af-3f9b-43a9-8999-e42b6b719426.png"},
		{Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 100, Rating: 5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/64b930f7-3c82-4a29-a433-dcc22f848668.png"},
		{Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/ff071a1c-1099-48f9-9b03-f858ccc53832.png"},
		{Name: "The Minimalist Slim Leather Watch", Category: "Fashion", Cost: 60, Rating: 5, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/5b478a4a-bf81-467c-964c-1881887799b7.png"},
		{Name: "Stylecon 9 Seater RHS Sofa Set", Category: "Home & Kitchen", Cost: 280, Rating: 4, Image: "https://crio-directus-assets.s3.ap-south-1.amazonaws.com/e4b8c6c9-c22c-41c9-9e4d-f296c90dcb8e.png"},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.ID = common.UUIDint64()
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}

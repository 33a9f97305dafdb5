package main

import (
	"booktrack/src/common"
	"booktrack/src/db"
	"booktrack/src/models"
	"booktrack/src/types"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type serviceView struct {
	models.Service
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func newServiceView(s models.Service) (serviceView, error) {
	avg, count, err := common.RatingSummary(s.ID)
	if err != nil {
		return serviceView{}, err
	}
	return serviceView{Service: s, AverageRating: avg, ReviewCount: count}, nil
}

// servicePublicHandlers registers the unauthenticated catalog reads.
func servicePublicHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/services", func(ctx *gin.Context) {
			db := db.GetDb()
			query := db.Model(&models.Service{})
			if category := ctx.Query("category"); category != "" {
				query = query.Where("category = ?", category)
			}
			if location := ctx.Query("location"); location != "" {
				query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
			}
			if minPrice := ctx.Query("min_price"); minPrice != "" {
				v, err := strconv.ParseFloat(minPrice, 64)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
					return
				}
				query = query.Where("price >= ?", v)
			}
			if maxPrice := ctx.Query("max_price"); maxPrice != "" {
				v, err := strconv.ParseFloat(maxPrice, 64)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
					return
				}
				query = query.Where("price <= ?", v)
			}
			var services []models.Service
			if err := query.Find(&services).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			views := make([]serviceView, 0, len(services))
			for _, s := range services {
				view, err := newServiceView(s)
				if err != nil {
					abortWithError(ctx, err)
					return
				}
				views = append(views, view)
			}
			ctx.JSON(http.StatusOK, views)
		}).
		GET("/services/:id", func(ctx *gin.Context) {
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var service models.Service
			if err := db.
				Where(&models.Service{ID: params.ID}).
				First(&service).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					abortWithError(ctx, fmt.Errorf("service %s: %w", params.ID, types.ErrNotFound))
					return
				}
				abortWithError(ctx, err)
				return
			}
			view, err := newServiceView(service)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			reviews, err := common.ServiceReviews(service.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, struct {
				serviceView
				Reviews []models.Review `json:"reviews"`
			}{view, reviews})
		})
	return g
}

// serviceProviderHandlers registers the authenticated, provider-gated CRUD.
func serviceProviderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/services", func(ctx *gin.Context) {
			current := currentUser(ctx)
			if current.Role != types.ROLE_PROVIDER {
				abortWithError(ctx, fmt.Errorf("only providers can create services: %w", types.ErrForbidden))
				return
			}
			var body types.CreateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			service := models.NewService(current, &body)
			if err := db.GetDb().Create(service).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, service)
		}).
		GET("/services/provider/my-services", func(ctx *gin.Context) {
			current := currentUser(ctx)
			if current.Role != types.ROLE_PROVIDER {
				abortWithError(ctx, fmt.Errorf("only providers can access this: %w", types.ErrForbidden))
				return
			}
			var services []models.Service
			if err := db.GetDb().
				Where(&models.Service{ProviderID: current.ID}).
				Find(&services).
				Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			views := make([]serviceView, 0, len(services))
			for _, s := range services {
				view, err := newServiceView(s)
				if err != nil {
					abortWithError(ctx, err)
					return
				}
				views = append(views, view)
			}
			ctx.JSON(http.StatusOK, views)
		}).
		PUT("/services/:id", func(ctx *gin.Context) {
			current := currentUser(ctx)
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			service, err := loadOwnService(current, params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			applyServiceUpdate(service, &body)
			if err := db.GetDb().Save(service).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, service)
		}).
		DELETE("/services/:id", func(ctx *gin.Context) {
			current := currentUser(ctx)
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			service, err := loadOwnService(current, params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := db.GetDb().Delete(service).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
		})
	return g
}

func loadOwnService(current *models.User, serviceID string) (*models.Service, error) {
	if current.Role != types.ROLE_PROVIDER {
		return nil, fmt.Errorf("only providers can manage services: %w", types.ErrForbidden)
	}
	var service models.Service
	if err := db.GetDb().
		Where(&models.Service{ID: serviceID}).
		First(&service).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("service %s: %w", serviceID, types.ErrNotFound)
		}
		return nil, err
	}
	if service.ProviderID != current.ID {
		return nil, fmt.Errorf("not your service: %w", types.ErrForbidden)
	}
	return &service, nil
}

func applyServiceUpdate(service *models.Service, body *types.UpdateServiceRequestBody) {
	if body.Name != nil {
		service.Name = *body.Name
	}
	if body.Description != nil {
		service.Description = *body.Description
	}
	if body.Category != nil {
		service.Category = *body.Category
	}
	if body.Price != nil {
		service.Price = *body.Price
	}
	if body.Location != nil {
		service.Location = *body.Location
	}
	if body.Duration != nil {
		service.Duration = *body.Duration
	}
	if body.ImageURL != nil {
		service.ImageURL = *body.ImageURL
	}
}

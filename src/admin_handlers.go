package main

import (
	"booktrack/src/db"
	"booktrack/src/models"
	"booktrack/src/types"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func requireAdmin(ctx *gin.Context) bool {
	if currentUser(ctx).Role != types.ROLE_ADMIN {
		abortWithError(ctx, fmt.Errorf("admin only: %w", types.ErrForbidden))
		return false
	}
	return true
}

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/stats", func(ctx *gin.Context) {
			if !requireAdmin(ctx) {
				return
			}
			db := db.GetDb()
			var totalCustomers, totalProviders, totalServices, totalBookings int64
			if err := db.Model(&models.User{}).Where(&models.User{Role: types.ROLE_CUSTOMER}).Count(&totalCustomers).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := db.Model(&models.User{}).Where(&models.User{Role: types.ROLE_PROVIDER}).Count(&totalProviders).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := db.Model(&models.Service{}).Count(&totalServices).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			if err := db.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
				abortWithError(ctx, err)
				return
			}

			var bookings []models.Booking
			if err := db.Select("service_id").Find(&bookings).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			counts := map[string]int64{}
			for _, b := range bookings {
				counts[b.ServiceID]++
			}
			type serviceCount struct {
				ServiceID string
				Count     int64
			}
			ranked := make([]serviceCount, 0, len(counts))
			for id, n := range counts {
				ranked = append(ranked, serviceCount{ServiceID: id, Count: n})
			}
			sort.Slice(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
			if len(ranked) > 5 {
				ranked = ranked[:5]
			}
			topServices := make([]gin.H, 0, len(ranked))
			for _, rc := range ranked {
				entry := gin.H{"_id": rc.ServiceID, "count": rc.Count}
				var service models.Service
				if err := db.Where(&models.Service{ID: rc.ServiceID}).First(&service).Error; err == nil {
					entry["service"] = service
				}
				topServices = append(topServices, entry)
			}

			ctx.JSON(http.StatusOK, gin.H{
				"total_users":     totalCustomers,
				"total_providers": totalProviders,
				"total_services":  totalServices,
				"total_bookings":  totalBookings,
				"top_services":    topServices,
			})
		}).
		GET("/admin/users", func(ctx *gin.Context) {
			if !requireAdmin(ctx) {
				return
			}
			var users []models.User
			if err := db.GetDb().Find(&users).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, users)
		}).
		PUT("/admin/users/:id/block", func(ctx *gin.Context) {
			if !requireAdmin(ctx) {
				return
			}
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			block, err := strconv.ParseBool(ctx.DefaultQuery("block", "true"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid block value"})
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.Where(&models.User{ID: params.ID}).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					abortWithError(ctx, fmt.Errorf("user %s: %w", params.ID, types.ErrNotFound))
					return
				}
				abortWithError(ctx, err)
				return
			}
			if err := db.Model(&user).Update("blocked", block).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "User updated"})
		}).
		DELETE("/admin/users/:id", func(ctx *gin.Context) {
			if !requireAdmin(ctx) {
				return
			}
			var params idRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.Where(&models.User{ID: params.ID}).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					abortWithError(ctx, fmt.Errorf("user %s: %w", params.ID, types.ErrNotFound))
					return
				}
				abortWithError(ctx, err)
				return
			}
			if err := db.Delete(&user).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
		}).
		GET("/admin/bookings", func(ctx *gin.Context) {
			if !requireAdmin(ctx) {
				return
			}
			var bookings []models.Booking
			if err := db.GetDb().Order("created_at DESC").Find(&bookings).Error; err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, bookings)
		})
	return g
}

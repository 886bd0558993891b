package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fuzumoe/siteinsight-backend/docs"
)

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegisterRoutes wires middleware, operational endpoints, root-level
// registrars and the /api/v1 registrars.
func RegisterRoutes(r *gin.Engine, rootRegs []RouteRegistrar, apiRegs []RouteRegistrar) {
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := r.Group("")
	for _, reg := range rootRegs {
		reg.RegisterRoutes(root)
	}

	api := r.Group("/api/v1")
	for _, reg := range apiRegs {
		reg.RegisterRoutes(api)
	}
}

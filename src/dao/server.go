package dao

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"runtime"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warp-contracts/dao-bridge/src/store"
	"github.com/warp-contracts/dao-bridge/src/utils/config"
	"github.com/warp-contracts/dao-bridge/src/utils/eth"
	"github.com/warp-contracts/dao-bridge/src/utils/task"
)

// Rest API server, serves shared state, proposals and monitor counters
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	gateway *Gateway
}

func NewServer(config *config.Config, gateway *Gateway) (self *Server) {
	self = new(Server)
	self.gateway = gateway

	self.Task = task.NewTask(config, "server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	if !config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router = gin.New()
	self.Router.Use(gin.Recovery())

	self.httpServer = &http.Server{
		Addr:    self.Config.RESTListenAddress,
		Handler: self.Router,
	}

	self.registerRoutes()

	return
}

func (self *Server) registerRoutes() {
	monitor := self.gateway.session.monitor

	registry := prometheus.NewRegistry()
	registry.MustRegister(monitor.GetPrometheusCollector())
	self.Router.GET("metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := self.Router.Group("v1")
	{
		v1.GET("health", monitor.OnGet)
		v1.GET("state", self.onGetState)
		v1.GET("proposals", self.onGetProposals)
		v1.GET("proposals/:id", self.onGetProposal)
		v1.GET("proposals/:id/voters", self.onGetVoters)
	}

	if self.Config.Profiler.Enabled {
		runtime.SetBlockProfileRate(self.Config.Profiler.BlockProfileRate)
		pprof.Register(self.Router)
	}
}

func (self *Server) onGetState(c *gin.Context) {
	state := make(gin.H)
	for key, value := range self.gateway.session.state.Snapshot() {
		if key == store.KeyContract {
			// Handles don't serialize
			if handle, ok := value.(eth.Handle); ok {
				state[string(key)] = handle.Address()
			}
			continue
		}
		state[string(key)] = value
	}
	c.JSON(http.StatusOK, state)
}

func (self *Server) onGetProposals(c *gin.Context) {
	value, ok := self.gateway.session.state.Get(store.KeyProposals)
	if !ok {
		c.JSON(http.StatusOK, []Proposal{})
		return
	}
	c.JSON(http.StatusOK, value)
}

func (self *Server) onGetProposal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	proposal, ok := self.gateway.FetchProposal(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (self *Server) onGetVoters(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	votes, err := self.gateway.FetchVoters(c.Request.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ErrNetworkUnsupported) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, votes)
}

func parseID(c *gin.Context) (id *big.Int, ok bool) {
	id, ok = new(big.Int).SetString(c.Param("id"), 10)
	if !ok || id.Sign() < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return nil, false
	}
	return
}

func (self *Server) run() (err error) {
	err = self.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}

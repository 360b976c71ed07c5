package configs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type ConsulService struct {
	ID      string            `json:"ID"`
	Name    string            `json:"Name"`
	Address string            `json:"Address"`
	Port    int               `json:"Port"`
	Check   map[string]string `json:"Check"`
}

// NewConsulService describes this server with an HTTP check on /health.
func NewConsulService(cfg Config) ConsulService {
	return ConsulService{
		ID:      fmt.Sprintf("quicknotes-%s-%d", cfg.ServiceAddress, cfg.Port),
		Name:    "quicknotes",
		Address: cfg.ServiceAddress,
		Port:    cfg.Port,
		Check: map[string]string{
			"HTTP":     fmt.Sprintf("http://%s:%d/health", cfg.ServiceAddress, cfg.Port),
			"Interval": "10s",
		},
	}
}

// RegisterService registers service with the Consul agent at consulAddress.
func RegisterService(ctx context.Context, consulAddress string, service ConsulService) error {
	data, err := json.Marshal(service)
	if err != nil {
		return errors.Wrap(err, "failed to marshal service data")
	}

	url := fmt.Sprintf("%s/v1/agent/service/register", consulAddress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "failed to create PUT request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to register service with Consul")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to register service with Consul: %s", resp.Status)
	}

	logrus.Infof("Service '%s' registered with Consul", service.ID)
	return nil
}

package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/tanklogix/loadplan/core/model"
	"github.com/tanklogix/loadplan/core/plan"
	"github.com/tanklogix/loadplan/infra/logger"
)

// PlanService computes a plan from a wire request. Implemented by the app
// service.
type PlanService interface {
	PlanFromRequest(ctx context.Context, req plan.Request, source string) (model.PlanResult, error)
}

// resultEnvelope is the payload published on the result topic.
type resultEnvelope struct {
	RequestID string           `json:"request_id"`
	Error     string           `json:"error,omitempty"`
	Plan      model.PlanResult `json:"plan"`
}

// Listener subscribes to the request topic and publishes one result per
// request, correlated by request id.
type Listener struct {
	cfg Config
	cli paho.Client
	svc PlanService
	log logger.Logger
}

// NewListener connects to the broker and subscribes to the request topic.
func NewListener(cfg Config, svc PlanService) (*Listener, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt-listener")
	opts, err := NewClientOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	l := &Listener{cfg: cfg, svc: svc, log: log}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(cfg.RequestTopic, cfg.QoS, l.onRequest); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	l.cli = cli
	return l, nil
}

func (l *Listener) onRequest(_ paho.Client, msg paho.Message) {
	var req plan.Request
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		l.log.Errorf("decode request: %v", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	env := resultEnvelope{RequestID: req.ID}
	res, err := l.svc.PlanFromRequest(context.Background(), req, "mqtt")
	if err != nil {
		env.Error = err.Error()
	} else {
		env.Plan = res
	}
	payload, err := json.Marshal(env)
	if err != nil {
		l.log.Errorf("encode result: %v", err)
		return
	}
	topic := fmt.Sprintf("%s/%s", l.cfg.ResultPrefix, req.ID)
	if token := l.cli.Publish(topic, l.cfg.QoS, false, payload); token.Wait() && token.Error() != nil {
		l.log.Errorf("publish result: %v", token.Error())
	}
}

// Close disconnects from the broker.
func (l *Listener) Close() {
	if l.cli != nil && l.cli.IsConnected() {
		l.cli.Disconnect(250)
	}
}

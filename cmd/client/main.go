package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/version"
	"nhooyr.io/websocket"
)

// A headless client that joins the server with a number of bots
// and wanders them around. Useful for load testing.
func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "WebSocket URL of the game server")
	codecName := flag.String("codec", messages.CodecJSON, "Wire codec (json, msgpack, flatbuffers)")
	bots := flag.Int("bots", 1, "Number of bots to connect")
	moveInterval := flag.Duration("move-interval", 250*time.Millisecond, "How often each bot changes direction")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(log.Options{Level: parsedLogLevel}))
	defer log.Sync()

	log.Info("Starting client version %s", version.Get())

	codec, err := messages.NewCodec(*codecName)
	if err != nil {
		panic(fmt.Sprintf("Failed to create codec: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < *bots; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b := &bot{
				name:         fmt.Sprintf("bot-%d", n),
				codec:        codec,
				moveInterval: *moveInterval,
				rng:          rand.New(rand.NewSource(time.Now().UnixNano() + int64(n))),
			}
			if err := b.run(ctx, *serverURL); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("%s stopped: %v", b.name, err)
			}
		}(i)
	}
	wg.Wait()
}

type bot struct {
	name         string
	codec        messages.Codec
	moveInterval time.Duration
	rng          *rand.Rand
	clientID     uint32
}

func (b *bot) run(ctx context.Context, serverURL string) error {
	conn, _, err := websocket.Dial(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %v", serverURL, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(1 << 20)

	if err := b.readWelcome(ctx, conn); err != nil {
		return err
	}
	log.Info("%s connected as client %d", b.name, b.clientID)

	if err := b.send(ctx, conn, messages.MessageTypeClientJoin, &messages.ClientJoin{Name: b.name}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go b.drain(ctx, conn, cancel)

	ticker := time.NewTicker(b.moveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			move := &messages.ClientMove{
				X: float64(b.rng.Intn(3) - 1),
				Y: float64(b.rng.Intn(3) - 1),
			}
			if err := b.send(ctx, conn, messages.MessageTypeClientMove, move); err != nil {
				return err
			}
		}
	}
}

// readWelcome reads the first frame, which the server always sends as the welcome.
func (b *bot) readWelcome(ctx context.Context, conn *websocket.Conn) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read welcome: %v", err)
	}
	welcome := &messages.ServerWelcome{}
	m, err := messages.Decode(b.codec, data, welcome)
	if err != nil {
		return fmt.Errorf("failed to decode welcome: %v", err)
	}
	if m.Type != messages.MessageTypeServerWelcome {
		return fmt.Errorf("expected %s as first frame, got %s", messages.MessageTypeServerWelcome, m.Type)
	}
	b.clientID = welcome.ClientID
	return nil
}

// drain consumes server frames so the server never drops this bot for being slow.
func (b *bot) drain(ctx context.Context, conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Debug("%s read loop stopped: %v", b.name, err)
			return
		}
		m, err := b.codec.DecodeMessage(data)
		if err != nil {
			log.Warn("%s failed to decode message: %v", b.name, err)
			continue
		}
		if m.Type != messages.MessageTypeServerGameUpdate {
			log.Debug("%s received %s", b.name, m.Type)
			continue
		}
		update := &messages.ServerGameUpdate{}
		if err := b.codec.DecodePayload(m, update); err != nil {
			log.Warn("%s failed to decode game update: %v", b.name, err)
			continue
		}
		for _, p := range update.Players {
			if p.ClientID == b.clientID {
				log.Trace("%s at tick %d: %v health %d", b.name, update.Tick, p.Position, p.Health)
			}
		}
	}
}

func (b *bot) send(ctx context.Context, conn *websocket.Conn, msgType messages.MessageType, v interface{}) error {
	data, err := messages.Encode(b.codec, msgType, v)
	if err != nil {
		return err
	}
	frameType := websocket.MessageText
	if b.codec.Binary() {
		frameType = websocket.MessageBinary
	}
	if err := conn.Write(ctx, frameType, data); err != nil {
		return fmt.Errorf("failed to send %s: %v", msgType, err)
	}
	return nil
}

package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matt-g-everett/cakeshow/scene"
)

func testWorld() (*scene.Scene, *scene.Camera) {
	sc := scene.NewScene()
	sc.AddObject(scene.NewObject("cake"))
	return sc, scene.NewCamera(35, scene.Vec3{})
}

func TestPublisherDrawOnlyQueues(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(DefaultConfig(), client, fixedClock(0))
	sc, cam := testWorld()

	if err := p.Draw(sc, cam); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(p.frames) != 0 {
		t.Fatal("Expected no frame queued while disconnected")
	}

	client.open = true
	sc.Lock()
	p.Draw(sc, cam)
	p.Draw(sc, cam)
	sc.Unlock()

	if n := client.publishedCount(); n != 0 {
		t.Errorf("Expected Draw never to publish, got %d publishes", n)
	}
	if len(p.frames) != 1 {
		t.Fatalf("Expected one queued frame with the rest dropped, got %d", len(p.frames))
	}

	b := <-p.frames
	if len(b) != headerSize+objectSize {
		t.Errorf("Expected a %d byte frame, got %d", headerSize+objectSize, len(b))
	}
}

func TestSendFrame(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(DefaultConfig(), client, fixedClock(0))

	if err := p.SendFrame([]byte{1, 2}); err != nil {
		t.Fatalf("SendFrame failed: %v", err)
	}
	if client.topics[0] != "cakeshow/stream" {
		t.Errorf("Expected the stream topic, got %s", client.topics[0])
	}

	client.err = errors.New("broker gone")
	if err := p.SendFrame([]byte{1, 2}); err == nil {
		t.Error("Expected the publish error to be returned")
	}
}

func TestPublisherRun(t *testing.T) {
	client := &fakeClient{open: true}
	p := NewPublisher(DefaultConfig(), client, fixedClock(0))
	sc, cam := testWorld()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- p.Run(ctx) }()

	p.Draw(sc, cam)
	deadline := time.Now().Add(time.Second)
	for client.publishedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if client.publishedCount() != 1 {
		t.Errorf("Expected the queued frame to be published, got %d", client.publishedCount())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected a clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

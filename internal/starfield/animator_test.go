package starfield

import (
	"bytes"
	"context"
	"image/png"
	"math/rand"
	"testing"
	"time"
)

func TestAnimator_StepsOncePerFrame(t *testing.T) {
	field := NewField(Options{Count: 20, Speed: 0.05}, rand.New(rand.NewSource(1)))
	surface := &countingSurface{}
	a := NewAnimator(field, surface, NewViewport(320, 200))

	ticks := make(chan time.Time, 6)
	start := time.Unix(0, 0)
	for i := 0; i < 6; i++ {
		ticks <- start.Add(time.Duration(i) * FrameInterval)
	}
	close(ticks)

	if err := a.Run(context.Background(), ticks); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if a.Frames() != 5 {
		t.Errorf("Expected 5 frames, got %d", a.Frames())
	}
	if surface.clears != 5 {
		t.Errorf("Expected 5 clears, got %d", surface.clears)
	}
}

func TestAnimator_TeardownDeregistersListener(t *testing.T) {
	vp := NewViewport(320, 200)
	a := NewAnimator(NewField(Options{Count: 5}, nil), &countingSurface{}, vp)
	b := NewAnimator(NewField(Options{Count: 5}, nil), &countingSurface{}, vp)

	ctxA, cancelA := context.WithCancel(context.Background())
	ctxB, cancelB := context.WithCancel(context.Background())
	doneA := make(chan struct{})
	doneB := make(chan struct{})
	never := make(chan time.Time)

	go func() { a.Run(ctxA, never); close(doneA) }()
	go func() { b.Run(ctxB, never); close(doneB) }()

	deadline := time.Now().Add(2 * time.Second)
	for vp.Listeners() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected 2 listeners, got %d", vp.Listeners())
		}
		time.Sleep(time.Millisecond)
	}

	vp.Resize(1024, 768)
	if w, h := a.field.Size(); w != 1024 || h != 768 {
		t.Errorf("animator a: expected 1024x768, got %dx%d", w, h)
	}
	if w, h := b.field.Size(); w != 1024 || h != 768 {
		t.Errorf("animator b: expected 1024x768, got %dx%d", w, h)
	}

	cancelA()
	<-doneA
	if vp.Listeners() != 1 {
		t.Errorf("Expected 1 listener after first teardown, got %d", vp.Listeners())
	}

	vp.Resize(640, 480)
	if w, _ := a.field.Size(); w != 1024 {
		t.Errorf("stopped animator should not see resizes, got width %d", w)
	}

	cancelB()
	<-doneB
	if vp.Listeners() != 0 {
		t.Errorf("Expected no listeners, got %d", vp.Listeners())
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := RenderOptions{Options: PageOptions, Width: 160, Height: 90, Frames: 3, Seed: 9}
	if err := RenderPNG(&buf, opts); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Errorf("Expected 160x90, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRender_Deterministic(t *testing.T) {
	opts := RenderOptions{Options: DefaultOptions, Width: 64, Height: 64, Frames: 2, Seed: 11}
	a := Render(opts)
	b := Render(opts)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected identical frames for the same seed")
	}
}

package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestState_SubscribeUnsubscribe(t *testing.T) {
	s := NewState(DeliveryQueue, nil, nil)
	s.Subscribe("a", "b")
	s.PSubscribe("news.*")
	s.SSubscribe("shard1")

	exact, patterns, sharded := s.Subscriptions()
	if len(exact) != 2 || len(patterns) != 1 || len(sharded) != 1 {
		t.Fatalf("unexpected subscription snapshot: %v %v %v", exact, patterns, sharded)
	}

	s.Unsubscribe("a")
	exact, _, _ = s.Subscriptions()
	if len(exact) != 1 || exact[0] != "b" {
		t.Fatalf("Unsubscribe did not remove channel: %v", exact)
	}
}

func TestState_QueueDeliversInOrder(t *testing.T) {
	s := NewState(DeliveryQueue, nil, nil)
	s.Dispatch(Message{Channel: "c", Payload: "1"})
	s.Dispatch(Message{Channel: "c", Payload: "2"})

	m1, ok := s.TryGetPubSubMessage()
	if !ok || m1.Payload != "1" {
		t.Fatalf("expected first message, got %+v ok=%v", m1, ok)
	}
	m2, ok := s.TryGetPubSubMessage()
	if !ok || m2.Payload != "2" {
		t.Fatalf("expected second message, got %+v ok=%v", m2, ok)
	}
	if _, ok := s.TryGetPubSubMessage(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestState_GetPubSubMessageBlocksUntilDispatch(t *testing.T) {
	s := NewState(DeliveryQueue, nil, nil)
	resultCh := make(chan Message, 1)
	go func() {
		m, err := s.GetPubSubMessage(context.Background())
		if err != nil {
			return
		}
		resultCh <- m
	}()

	time.Sleep(10 * time.Millisecond)
	s.Dispatch(Message{Channel: "c", Payload: "hello"})

	select {
	case m := <-resultCh:
		if m.Payload != "hello" {
			t.Fatalf("payload = %v, want hello", m.Payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("GetPubSubMessage did not unblock")
	}
}

func TestState_GetPubSubMessageRespectsCancellation(t *testing.T) {
	s := NewState(DeliveryQueue, nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.GetPubSubMessage(ctx)
	if err == nil {
		t.Fatalf("expected context deadline error")
	}
}

func TestState_CallbackModeDoesNotQueue(t *testing.T) {
	var got []Message
	s := NewState(DeliveryCallback, func(m Message) {
		got = append(got, m)
	}, nil)

	s.Dispatch(Message{Channel: "c", Payload: "1"})
	if len(got) != 1 || got[0].Payload != "1" {
		t.Fatalf("callback did not receive message: %v", got)
	}
	if _, ok := s.TryGetPubSubMessage(); ok {
		t.Fatalf("callback mode should never populate the queue")
	}
}

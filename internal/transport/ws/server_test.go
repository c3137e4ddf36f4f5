package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SeamusWaldron/cubestate"
)

const solved = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

func newTestServer(t *testing.T) (*cubestate.Session, *httptest.Server) {
	t.Helper()
	cube := cubestate.NewSession()
	ts := httptest.NewServer(NewServer(cube, nil).Routes())
	t.Cleanup(ts.Close)
	return cube, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn, v any) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	base, err := DecodeBase(b)
	if err != nil {
		t.Fatalf("DecodeBase() failed: %v", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	return base.Type
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
}

func TestHelloCarriesState(t *testing.T) {
	cube, ts := newTestServer(t)
	cube.Apply(cubestate.R)

	conn := dial(t, ts)
	var hello StateMsg
	if typ := read(t, conn, &hello); typ != TypeState {
		t.Fatalf("first message type = %q, want %q", typ, TypeState)
	}
	if hello.Facelets != "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB" {
		t.Errorf("facelets = %s", hello.Facelets)
	}
	if hello.Solved {
		t.Error("state after R reported solved")
	}
	if hello.Seq != 1 {
		t.Errorf("seq = %d, want 1", hello.Seq)
	}
	if len(hello.Moves) != 1 || hello.Moves[0] != "R" {
		t.Errorf("moves = %v, want [R]", hello.Moves)
	}
}

func TestCommands(t *testing.T) {
	cube, ts := newTestServer(t)
	conn := dial(t, ts)
	var hello StateMsg
	read(t, conn, &hello)

	send(t, conn, MoveMsg{Type: TypeMove, Notation: "R U"})
	var tr TransitionMsg
	for i, want := range []string{"R", "U"} {
		if typ := read(t, conn, &tr); typ != TypeTransition {
			t.Fatalf("message %d type = %q", i, typ)
		}
		if tr.Move == nil || tr.Move.Notation != want {
			t.Errorf("transition %d move = %+v, want %s", i, tr.Move, want)
		}
	}

	send(t, conn, MoveMsg{Type: TypeUndo})
	read(t, conn, &tr)
	if !tr.Undo || tr.Move.Notation != "U'" {
		t.Errorf("undo transition = %+v", tr)
	}

	// Raw descriptor: clockwise U is a negative turn about Y.
	send(t, conn, MoveMsg{Type: TypeMove, Axis: "y", Layer: 1, Direction: -1})
	read(t, conn, &tr)
	if tr.Move.Notation != "U" || tr.Move.Axis != "y" {
		t.Errorf("descriptor transition = %+v", tr.Move)
	}

	send(t, conn, MoveMsg{Type: TypeReset})
	read(t, conn, &tr)
	if !tr.Reset || tr.Move != nil || !tr.Solved || tr.Facelets != solved {
		t.Errorf("reset transition = %+v", tr)
	}
	if !cube.IsSolved() {
		t.Error("cube not solved after reset")
	}
}

func TestRejectedCommands(t *testing.T) {
	cube, ts := newTestServer(t)
	conn := dial(t, ts)
	var hello StateMsg
	read(t, conn, &hello)

	tests := []struct {
		name string
		msg  any
	}{
		{"bad notation", MoveMsg{Type: TypeMove, Notation: "R X"}},
		{"bad axis", MoveMsg{Type: TypeMove, Axis: "w", Layer: 1, Direction: 1}},
		{"bad layer", MoveMsg{Type: TypeMove, Axis: "x", Layer: 2, Direction: 1}},
		{"wide slice", MoveMsg{Type: TypeMove, Axis: "x", Layer: 0, Direction: 1, Wide: true}},
		{"nothing to undo", MoveMsg{Type: TypeUndo}},
		{"unknown type", Base{Type: "spin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, tt.msg)
			var e ErrorMsg
			if typ := read(t, conn, &e); typ != TypeError {
				t.Fatalf("type = %q, want error", typ)
			}
			if e.Error == "" {
				t.Error("empty error text")
			}
		})
	}

	if !cube.IsSolved() {
		t.Error("rejected commands changed the cube")
	}
}

func TestBroadcastsServerSideMoves(t *testing.T) {
	cube, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	var hello StateMsg
	read(t, a, &hello)
	read(t, b, &hello)

	if _, err := cube.Apply(cubestate.F); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		var tr TransitionMsg
		read(t, conn, &tr)
		if tr.Move == nil || tr.Move.Notation != "F" || tr.Seq != 1 {
			t.Errorf("transition = %+v", tr)
		}
	}
}

func TestStateHandler(t *testing.T) {
	cube, ts := newTestServer(t)
	cube.Apply(cubestate.U)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var msg StateMsg
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	// U carries the top row of each side face one face to the left.
	if msg.Facelets != "UUUUUUUUUBBBRRRRRRRRRFFFFFFDDDDDDDDDFFFLLLLLLLLLBBBBBB" {
		t.Errorf("facelets = %s", msg.Facelets)
	}

	post, err := http.Post(ts.URL+"/api/state", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", post.StatusCode)
	}
}

func TestSilentObserverStaysConnected(t *testing.T) {
	cube := cubestate.NewSession()
	srv := NewServer(cube, nil)
	srv.readTimeout = 200 * time.Millisecond
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	conn := dial(t, ts)
	var hello StateMsg
	read(t, conn, &hello)
	_ = conn.SetReadDeadline(time.Time{})

	// The client only reads. Reading is what answers the server's pings.
	type result struct {
		b   []byte
		err error
	}
	msgs := make(chan result, 4)
	go func() {
		for {
			_, b, err := conn.ReadMessage()
			msgs <- result{b, err}
			if err != nil {
				return
			}
		}
	}()

	time.Sleep(3 * srv.readTimeout)
	if srv.Clients() != 1 {
		t.Fatalf("clients = %d after idle period, want 1", srv.Clients())
	}
	cube.Apply(cubestate.R)

	select {
	case r := <-msgs:
		if r.err != nil {
			t.Fatalf("observer dropped: %v", r.err)
		}
		var tr TransitionMsg
		if err := json.Unmarshal(r.b, &tr); err != nil {
			t.Fatalf("Unmarshal() failed: %v", err)
		}
		if tr.Type != TypeTransition || tr.Move == nil || tr.Move.Notation != "R" {
			t.Errorf("transition = %+v", tr)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no transition received")
	}
}

package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"

	"cellchess/game"
	"cellchess/rules"
)

//go:embed assets/index.html
var assets embed.FS

type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Application serves the board to a browser on the same machine: queries
// over HTTP, touches and promotions as POSTs, and every change pushed over
// a websocket.
type Application struct {
	router      *mux.Router
	session     *game.Session
	engineColor rules.Color
	logger      log.Interface
	clients     map[*Client]struct{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
	engineDone  func() // test hook, called after an engine move is broadcast
}

// NewApplication wires the routes. The engine replies automatically whenever
// engineColor is to move; rules.NoColor makes both sides human.
func NewApplication(session *game.Session, engineColor rules.Color, logger log.Interface, accessLog io.Writer) *Application {
	app := &Application{
		router:      mux.NewRouter(),
		session:     session,
		engineColor: engineColor,
		logger:      logger,
		clients:     make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	logged := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(accessLog, next)
	}
	app.router.NotFoundHandler = logged(http.HandlerFunc(notFoundHandler))
	app.router.Use(logged)

	app.router.HandleFunc("/", byMethod(methodHandlers{http.MethodGet: app.indexHandler}))
	app.router.HandleFunc("/ws", app.wsHandler)
	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", byMethod(methodHandlers{http.MethodGet: app.boardHandler}))
	api.HandleFunc("/fen", byMethod(methodHandlers{http.MethodGet: app.fenHandler, http.MethodPost: app.loadFENHandler}))
	api.HandleFunc("/touch/{square:[a-h][1-8]}", byMethod(methodHandlers{http.MethodPost: app.touchHandler}))
	api.HandleFunc("/promote/{piece:[qrbn]}", byMethod(methodHandlers{http.MethodPost: app.promoteHandler}))
	api.HandleFunc("/new", byMethod(methodHandlers{http.MethodPost: app.newGameHandler}))
	return app
}

type methodHandlers map[string]http.HandlerFunc

// byMethod routes on the request method once the path has matched, answering
// 405 with an Allow header for any other method.
func byMethod(hs methodHandlers) http.HandlerFunc {
	allowed := make([]string, 0, len(hs))
	for m := range hs {
		allowed = append(allowed, m)
	}
	slices.Sort(allowed)
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := hs[r.Method]; ok {
			h(w, r)
			return
		}
		w.Header().Set("Allow", allow)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

type statusPayload struct {
	Check            bool   `json:"check"`
	Checkmate        bool   `json:"checkmate"`
	Over             bool   `json:"over"`
	Result           string `json:"result"`
	Reason           string `json:"reason"`
	Winner           string `json:"winner,omitempty"`
	PromotionPending bool   `json:"promotionPending"`
	Thinking         bool   `json:"thinking"`
}

type boardPayload struct {
	FEN      string             `json:"fen"`
	Turn     string             `json:"turn"`
	Cells    [64]rules.CellView `json:"cells"`
	Status   statusPayload      `json:"status"`
	Moves    []game.MoveRecord  `json:"moves"`
	MoveText string             `json:"movetext"`
	Eval     int32              `json:"eval"`
}

func (app *Application) snapshot() boardPayload {
	st := app.session.Status()
	moves := app.session.Moves()
	p := boardPayload{
		FEN:   app.session.FEN(),
		Turn:  st.Turn.String(),
		Cells: app.session.View(),
		Status: statusPayload{
			Check:            st.Check,
			Checkmate:        st.Checkmate,
			Over:             st.Over(),
			Result:           st.Result(),
			Reason:           st.Reason(),
			PromotionPending: st.PromotionPending,
			Thinking:         st.Thinking,
		},
		Moves:    moves,
		MoveText: game.MoveText(moves),
		Eval:     app.session.Evaluate(),
	}
	if st.Winner != rules.NoColor {
		p.Status.Winner = st.Winner.String()
	}
	return p
}

func (app *Application) indexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := assets.ReadFile("assets/index.html")
	if err != nil {
		app.logger.WithError(err).Error("read index page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (app *Application) boardHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, app.snapshot())
}

func (app *Application) fenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, app.session.FEN()+"\n")
}

func (app *Application) loadFENHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := app.session.LoadFEN(strings.TrimSpace(string(body))); err != nil {
		app.writeError(w, err)
		return
	}
	app.changed()
	app.writeJSON(w, http.StatusOK, app.snapshot())
}

func (app *Application) touchHandler(w http.ResponseWriter, r *http.Request) {
	sq, err := rules.ParseSquare(mux.Vars(r)["square"])
	if err != nil {
		app.writeError(w, err)
		return
	}
	res, err := app.session.Touch(sq)
	if err != nil {
		app.writeError(w, err)
		return
	}
	if res != rules.TouchIgnored {
		app.changed()
	}
	app.writeJSON(w, http.StatusOK, app.snapshot())
}

func (app *Application) promoteHandler(w http.ResponseWriter, r *http.Request) {
	pt := map[string]rules.PieceType{
		"q": rules.PieceTypeQueen,
		"r": rules.PieceTypeRook,
		"b": rules.PieceTypeBishop,
		"n": rules.PieceTypeKnight,
	}[mux.Vars(r)["piece"]]
	ok, err := app.session.Promote(pt)
	if err != nil {
		app.writeError(w, err)
		return
	}
	if ok {
		app.changed()
	}
	app.writeJSON(w, http.StatusOK, app.snapshot())
}

func (app *Application) newGameHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.session.Reset(); err != nil {
		app.writeError(w, err)
		return
	}
	app.changed()
	app.writeJSON(w, http.StatusOK, app.snapshot())
}

// changed pushes the board to every client and lets the engine move if it
// is its turn.
func (app *Application) changed() {
	app.broadcast(app.snapshot())
	app.maybeStartEngine()
}

func (app *Application) maybeStartEngine() {
	st := app.session.Status()
	if app.engineColor == rules.NoColor || st.Turn != app.engineColor || st.Over() || st.PromotionPending {
		return
	}
	if err := app.session.StartEngine(context.Background()); err != nil {
		app.logger.WithError(err).Debug("engine not started")
		return
	}
	app.broadcast(app.snapshot())
	go func() {
		if _, err := app.session.AwaitEngine(context.Background()); err != nil {
			app.logger.WithError(err).Error("engine move")
		}
		app.broadcast(app.snapshot())
		if app.engineDone != nil {
			app.engineDone()
		}
	}()
}

func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.WithError(err).Warn("websocket upgrade")
		return
	}
	client := &Client{conn: conn}
	app.clientsLock.Lock()
	app.clients[client] = struct{}{}
	app.clientsLock.Unlock()
	app.logger.WithField("remote", conn.RemoteAddr().String()).Info("renderer connected")

	if err := client.send(app.snapshot()); err != nil {
		app.drop(client)
		return
	}
	// The renderer only listens; reads detect the close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				app.drop(client)
				return
			}
		}
	}()
}

func (app *Application) drop(c *Client) {
	app.clientsLock.Lock()
	delete(app.clients, c)
	app.clientsLock.Unlock()
	c.conn.Close()
	app.logger.Debug("renderer disconnected")
}

func (app *Application) broadcast(p boardPayload) {
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	for client := range app.clients {
		if err := client.send(p); err != nil {
			app.logger.WithError(err).Warn("push board")
		}
	}
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.WithError(err).Warn("encode response")
	}
}

func (app *Application) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrThinking):
		status = http.StatusConflict
	case errors.Is(err, rules.ErrInvalidFEN), errors.Is(err, rules.ErrInvalidSquare):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

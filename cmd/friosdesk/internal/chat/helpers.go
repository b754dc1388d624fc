package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/3afrios/friosdesk/cmd/friosdesk/internal"
	"github.com/3afrios/friosdesk/pkg/api"
	"github.com/3afrios/friosdesk/pkg/bus"
	"github.com/3afrios/friosdesk/pkg/console"
	"github.com/3afrios/friosdesk/pkg/logger"
	"github.com/3afrios/friosdesk/pkg/push"
	"github.com/3afrios/friosdesk/pkg/views"
)

type shell struct {
	ctx      context.Context
	client   *api.Client
	store    *console.Store
	composer *console.Composer
	poller   *console.MetricsPoller
	search   string
}

func chatCmd(debug bool, search string) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if debug {
		logger.SetDebug()
		fmt.Println("🔍 Debug mode enabled")
	}

	client := internal.NewAPIClient(cfg)
	refresh := time.Duration(cfg.Chat.RefreshSeconds) * time.Second

	clock := console.NewClock(refresh)
	defer clock.Stop()

	store := console.NewStore(clock.Now, time.Duration(cfg.Chat.SLAWarnMinutes)*time.Minute)
	events := bus.NewEventBus()
	defer events.Close()

	composer := console.NewComposer(events, client)
	poller := console.NewMetricsPoller(client, refresh)
	defer poller.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := refreshConversations(ctx, client, store); err != nil {
		return fmt.Errorf("error loading conversations: %w", err)
	}

	// Live updates are best effort. A dead socket stays dead until the next
	// chat session; everything still works over REST.
	channel, err := push.Dial(ctx, client, events)
	if err != nil {
		log.Warn().Err(err).Msg("Push channel unavailable, running on REST only")
	} else {
		channel.Start(ctx)
		defer channel.Close()
	}

	go mergeLoop(ctx, events, store)
	go refreshLoop(ctx, refresh, client, store)
	poller.Start(ctx)

	sh := &shell{
		ctx:      ctx,
		client:   client,
		store:    store,
		composer: composer,
		poller:   poller,
		search:   search,
	}

	fmt.Printf("%s Console de atendimento 3A Frios (exit para sair, /help para comandos)\n\n", internal.Logo)
	sh.printList()
	sh.repl()

	return nil
}

// refreshConversations replaces the list from the backend and re-fetches
// the selected transcript.
func refreshConversations(ctx context.Context, client *api.Client, store *console.Store) error {
	convs, err := client.Conversations(ctx)
	if err != nil {
		return err
	}
	store.SetConversations(convs)

	sel := store.Selected()
	if sel == 0 {
		return nil
	}
	msgs, err := client.Messages(ctx, sel)
	if err != nil {
		return err
	}
	store.ReplaceMessages(sel, msgs)
	return nil
}

// mergeLoop folds pushed messages into the store until the bus closes.
func mergeLoop(ctx context.Context, events *bus.EventBus, store *console.Store) {
	for {
		evt, ok := events.ConsumeInbound(ctx)
		if !ok {
			return
		}
		store.ApplyPush(evt.Message)
	}
}

// refreshLoop re-syncs with the backend on the chat refresh interval. A
// failed sync keeps the local state and waits for the next tick.
func refreshLoop(ctx context.Context, interval time.Duration, client *api.Client, store *console.Store) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := refreshConversations(ctx, client, store); err != nil {
				log.Warn().Err(err).Msg("Conversation refresh failed, keeping local state")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *shell) repl() {
	prompt := fmt.Sprintf("%s > ", internal.Logo)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".friosdesk_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		s.simpleRepl()
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nAté logo!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if done := s.handle(strings.TrimSpace(line)); done {
			return
		}
	}
}

func (s *shell) simpleRepl() {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s > ", internal.Logo)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nAté logo!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if done := s.handle(strings.TrimSpace(line)); done {
			return
		}
	}
}

// handle runs one console input. Returns true when the session should end.
func (s *shell) handle(input string) bool {
	if input == "" {
		return false
	}
	if input == "exit" || input == "quit" {
		fmt.Println("Até logo!")
		return true
	}

	if !strings.HasPrefix(input, "/") {
		s.send(console.Draft{Content: input})
		return false
	}

	cmd, arg, _ := strings.Cut(input[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "help":
		s.printHelp()
	case "list":
		if arg != "" {
			s.search = arg
		}
		s.printList()
	case "all":
		s.search = ""
		s.printList()
	case "open":
		s.open(arg)
	case "show":
		s.printTranscript()
	case "file":
		path, caption, _ := strings.Cut(arg, " ")
		if path == "" {
			fmt.Println("Uso: /file <caminho> [legenda]")
			return false
		}
		s.send(console.Draft{Content: strings.TrimSpace(caption), FilePath: path})
	case "order":
		s.attachOrder(arg)
	case "metrics":
		s.printMetrics()
	default:
		fmt.Printf("Comando desconhecido: /%s (veja /help)\n", cmd)
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Println(`Comandos:
  <texto>            envia a mensagem para a conversa selecionada
  /list [busca]      lista conversas (filtra por nome ou telefone)
  /all               limpa o filtro de busca
  /open <id>         seleciona uma conversa e mostra o histórico
  /show              mostra o histórico da conversa selecionada
  /file <caminho> [legenda]   envia um arquivo (imagem ou PDF)
  /order <id>        vincula um pedido à conversa selecionada
  /metrics           métricas de atendimento
  exit               sai do console`)
}

func (s *shell) printList() {
	convs := s.store.Visible(s.search)
	fmt.Print(views.RenderConversationList(convs, s.store.Selected(), s.store.DelayBadge))
}

func (s *shell) printTranscript() {
	if s.store.Selected() == 0 {
		fmt.Println("Nenhuma conversa selecionada.")
		return
	}
	fmt.Print(views.RenderTranscript(s.store.Transcript(), s.client.MediaURL))
}

func (s *shell) open(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("Uso: /open <id>")
		return
	}
	if !s.store.Select(id) {
		fmt.Printf("Conversa %d não encontrada.\n", id)
		return
	}

	msgs, err := s.client.Messages(s.ctx, id)
	if err != nil {
		log.Error().Err(err).Int("conversation_id", id).Msg("Failed to fetch transcript")
		fmt.Println("Não foi possível carregar o histórico.")
		return
	}
	s.store.ReplaceMessages(id, msgs)
	s.printTranscript()
}

func (s *shell) send(draft console.Draft) {
	sel := s.store.Selected()
	if sel == 0 {
		fmt.Println("Nenhuma conversa selecionada. Use /open <id>.")
		return
	}
	// The backend echoes the message over the push channel; nothing is
	// appended locally on success.
	if err := s.composer.Send(s.ctx, sel, draft); err != nil {
		fmt.Println("Falha ao enviar. Veja os logs.")
	}
}

func (s *shell) attachOrder(arg string) {
	orderID, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("Uso: /order <id do pedido>")
		return
	}
	sel := s.store.Selected()
	if sel == 0 {
		fmt.Println("Nenhuma conversa selecionada. Use /open <id>.")
		return
	}

	if _, err := s.client.AttachOrder(s.ctx, sel, orderID); err != nil {
		log.Error().Err(err).Int("order_id", orderID).Msg("Failed to attach order")
		fmt.Println("Não foi possível vincular o pedido.")
		return
	}
	fmt.Printf("Pedido %d vinculado à conversa %d.\n", orderID, sel)
}

func (s *shell) printMetrics() {
	m, ok := s.poller.Snapshot()
	if !ok {
		fmt.Println("Métricas ainda não carregadas.")
		return
	}
	fmt.Print(views.RenderConversationMetrics(m))
}

// Package flightvec serves golden cases to RTL test harnesses over Arrow
// Flight. Tickets carry case names; ListFlights enumerates the loaded
// catalog in insertion order.
package flightvec

import (
	"context"
	"net"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/logger"
	"github.com/tapeworks/npuref/internal/metrics"
)

// Server holds a case catalog and answers Flight requests for it.
type Server struct {
	flight.BaseFlightServer

	mu    sync.RWMutex
	cases map[string]*arrowio.Case
	order []string

	srv flight.Server
	log *logger.Logger
}

// NewServer returns an empty server. Cases are added with Add before
// serving starts.
func NewServer() *Server {
	return &Server{
		cases: make(map[string]*arrowio.Case),
		log:   logger.Log.WithComponent("flightvec"),
	}
}

// Add validates c and puts it in the catalog. Adding a name twice
// replaces the earlier case.
func (s *Server) Add(c *arrowio.Case) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.Name]; !ok {
		s.order = append(s.order, c.Name)
	}
	s.cases[c.Name] = c
	return nil
}

// Len reports the number of loaded cases.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}

// Init binds the Flight service to addr. Use addr "127.0.0.1:0" to pick
// an ephemeral port; Addr reports the bound address.
func (s *Server) Init(addr string) error {
	srv := flight.NewServerWithMiddleware(nil)
	srv.RegisterFlightService(s)
	if err := srv.Init(addr); err != nil {
		return err
	}
	s.srv = srv
	return nil
}

// Serve blocks serving Flight requests until Shutdown is called.
func (s *Server) Serve() error {
	s.log.Info("serving cases", "addr", s.srv.Addr().String(), "cases", s.Len())
	return s.srv.Serve()
}

// Shutdown stops the server.
func (s *Server) Shutdown() {
	if s.srv != nil {
		s.srv.Shutdown()
	}
}

// Addr returns the bound address. Init must have succeeded.
func (s *Server) Addr() net.Addr {
	return s.srv.Addr()
}

func (s *Server) lookup(name string) (*arrowio.Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[name]
	return c, ok
}

// DoGet streams the single-row record of the case named by the ticket.
func (s *Server) DoGet(tkt *flight.Ticket, fs flight.FlightService_DoGetServer) error {
	metrics.RecordFlightRequest("do_get")

	name := string(tkt.GetTicket())
	c, ok := s.lookup(name)
	if !ok {
		return status.Errorf(codes.NotFound, "unknown case %q", name)
	}

	w := flight.NewRecordWriter(fs, ipc.WithSchema(arrowio.Schema()))
	defer w.Close()

	rec := arrowio.NewRecord(c)
	defer rec.Release()

	if err := w.Write(rec); err != nil {
		return err
	}
	metrics.RecordFlightBatch()
	s.log.Debug("case sent", "case", name)
	return nil
}

// ListFlights sends one FlightInfo per loaded case in insertion order.
func (s *Server) ListFlights(_ *flight.Criteria, fs flight.FlightService_ListFlightsServer) error {
	metrics.RecordFlightRequest("list_flights")

	s.mu.RLock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	s.mu.RUnlock()

	for _, name := range names {
		if err := fs.Send(s.flightInfo(name)); err != nil {
			return err
		}
	}
	return nil
}

// GetFlightInfo describes the case named by the descriptor path.
func (s *Server) GetFlightInfo(_ context.Context, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	metrics.RecordFlightRequest("get_flight_info")

	if len(desc.GetPath()) != 1 {
		return nil, status.Errorf(codes.InvalidArgument, "descriptor path must name one case")
	}
	name := desc.GetPath()[0]
	if _, ok := s.lookup(name); !ok {
		return nil, status.Errorf(codes.NotFound, "unknown case %q", name)
	}
	return s.flightInfo(name), nil
}

func (s *Server) flightInfo(name string) *flight.FlightInfo {
	return &flight.FlightInfo{
		Schema: flight.SerializeSchema(arrowio.Schema(), memory.DefaultAllocator),
		FlightDescriptor: &flight.FlightDescriptor{
			Type: flight.DescriptorPATH,
			Path: []string{name},
		},
		Endpoint: []*flight.FlightEndpoint{{
			Ticket: &flight.Ticket{Ticket: []byte(name)},
		}},
		TotalRecords: 1,
		TotalBytes:   -1,
	}
}

// Package metrics exports state machine activity as Prometheus metrics.
//
// A Collector turns statemachine.Hooks callbacks into counters:
//
//	collector := metrics.NewCollector("fsm")
//	collector.MustRegister(prometheus.DefaultRegisterer)
//
//	machine := statemachine.New(cfg, statemachine.WithHooks(collector.Hooks()))
//
// Metrics (with namespace "fsm"):
//
//   - fsm_transitions_total{op,from,to} – successful change_state, trigger and reset calls
//   - fsm_history_total{op,result} – undo and redo calls, result is "applied" or "empty"
//   - fsm_history_cleared_total – clear_history calls
//   - fsm_errors_total{op} – rejected change_state and trigger calls
//   - fsm_current_state{machine_id,state} – 1 for the state each machine is in
//
// State names become label values, so keep state tables small and static.
package metrics

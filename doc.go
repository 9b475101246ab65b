/*
Package taskflow is a console to-do assistant built on a small, typed
state-machine engine.

Nine nodes (input, validate, categorize, process, save, summary, update,
delete, check_deadlines) share one domain.State and are wired through an
action-keyed transition table that is validated when it is built. Each node
follows a Prepare / Execute / Finalize lifecycle: only Finalize mutates the
shared state.

# Usage

	store := file.New("tasks.yaml")
	a, err := taskflow.New(store,
		taskflow.WithBreakdowner(ollama.New()),
		taskflow.WithDateParser(dateparse.New("ro", "en")),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatal(err)
	}

Run returns nil when the user picks Exit. A node returning an action with no
matching edge stops the run with a *domain.TransitionError.
*/
package taskflow

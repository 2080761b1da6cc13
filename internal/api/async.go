package api

import (
	"net/http"

	"github.com/akarpov/storefront-api/internal/api/shared"
	"github.com/akarpov/storefront-api/internal/task"
)

// respondDeferred submits a job to the executor, waits for it on the request
// context and writes the result with successStatus. Submission failures
// surface as service-unavailable; the job itself keeps running if the client
// goes away mid-wait.
func respondDeferred(
	w http.ResponseWriter,
	r *http.Request,
	executor *task.Executor,
	successStatus int,
	job task.Job,
) {
	deferred, err := executor.Submit(job)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	value, err := deferred.Wait(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if successStatus == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, successStatus, value)
}

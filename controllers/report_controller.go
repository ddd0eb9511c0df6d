package controllers

import (
	"net/http"
	"strconv"
	"time"

	"immogest/database"
	"immogest/services"
)

// ReportController gère les rapports financiers
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController crée une nouvelle instance de ReportController
func NewReportController(db *database.Database) *ReportController {
	return &ReportController{
		reportService: services.NewReportService(db.DB),
	}
}

// monthsFromRequest lit le paramètre ?months= (3, 6 ou 12; 6 par défaut)
func monthsFromRequest(r *http.Request) int {
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil {
		return 6
	}
	return months
}

// Summary retourne les agrégats mensuels de la fenêtre demandée
func (c *ReportController) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := c.reportService.Summary(userID, monthsFromRequest(r), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Export renvoie le rapport au format CSV
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, fileName, err := c.reportService.ExportCSV(userID, monthsFromRequest(r), time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	w.Write(data)
}

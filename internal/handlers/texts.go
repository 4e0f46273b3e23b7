package handlers

const (
	btnNewEntry  = "New entry"
	btnLastEntry = "Last entry"
	btnHistory   = "History"
	btnExport    = "Export"
	btnAdvice    = "Advice"

	btnBuild    = "Build report"
	btnReset    = "Reset"
	btnEdit     = "Use as new entry"
	btnSaveExp  = "Save last report"
	btnShowExp  = "Show export"
	btnDelExp   = "Delete export"
	checkMark   = "✅ "
	uncheckMark = "▫️ "
)

// callback data
const (
	cbToggle  = "tg" // tg:<group>:<index>
	cbBuild   = "build"
	cbReset   = "reset"
	cbEdit    = "edit"
	cbNoop    = "noop"
	cbExpSave = "ex:save"
	cbExpShow = "ex:show"
	cbExpDel  = "ex:del"
)

const (
	txtMenu          = "Main menu"
	txtPick          = "Tick everything that applies and press «Build report»."
	txtNoSession     = "Start a new entry first."
	txtNoEntries     = "No entries yet."
	txtHistoryEmpty  = "History is empty."
	txtSavePartial   = "The report was built, but it could not be saved completely."
	txtExportMenu    = "Export storage: %s"
	txtExportNoLoc   = "Export storage is unavailable."
	txtExportSaved   = "Report saved to %s"
	txtExportFailed  = "Could not save the export."
	txtExportMissing = "No export found."
	txtExportDeleted = "Export deleted."
	txtExportDelFail = "Could not delete the export."
	txtNothingExport = "Nothing to export yet."
	txtAdviceEmpty   = "No advice yet."
	txtAdviceFailed  = "Advice is unavailable right now."
	txtAdviceAdded   = "Added advice #%d."
	txtAdviceUpdated = "Advice #%d updated."
	txtAdviceDeleted = "Advice #%d deleted."
	txtAdviceMissing = "There is no advice #%d."
	txtLastCleared   = "Last entry cleared."
	txtHistCleared   = "History cleared."
	txtClearFailed   = "Could not clear the data."
	txtUsageAdd      = "Usage: /addadvice Title | Text"
	txtUsageEdit     = "Usage: /editadvice ID | Title | Text"
	txtUsageDel      = "Usage: /deladvice ID"
	txtHelp          = "Commands:\n" +
		"/start — main menu\n" +
		"/addadvice Title | Text — add advice\n" +
		"/editadvice ID | Title | Text — change advice\n" +
		"/deladvice ID — delete advice\n" +
		"/clear — forget the last entry\n" +
		"/clearhistory — erase the history"
)

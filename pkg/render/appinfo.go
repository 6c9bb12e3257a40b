package render

import (
	"github.com/fioriscope/fioriscope/pkg/apps"
)

// NotAvailable fills metadata fields the catalog left empty.
const NotAvailable = "N/A"

// NoAppInfo is shown when no details were returned.
const NoAppInfo = "No app information available"

// AppInfo is the header panel of a single application.
type AppInfo struct {
	Title           string `json:"title" yaml:"title"`
	FioriID         string `json:"fioriId" yaml:"fioriId"`
	Release         string `json:"release" yaml:"release"`
	ApplicationType string `json:"applicationType" yaml:"applicationType"`
	UITechnology    string `json:"uiTechnology" yaml:"uiTechnology"`
	Component       string `json:"component,omitempty" yaml:"component,omitempty"`
	BSPName         string `json:"bspName,omitempty" yaml:"bspName,omitempty"`
	UI5ComponentID  string `json:"ui5ComponentId,omitempty" yaml:"ui5ComponentId,omitempty"`
	Deprecated      bool   `json:"deprecated" yaml:"deprecated"`
}

// AppInfoPanel derives the header panel from the details record.
// It returns false when details is empty.
func AppInfoPanel(details apps.Record) (AppInfo, bool) {
	if len(details) == 0 {
		return AppInfo{}, false
	}

	info := AppInfo{
		Title:           orDefault(details.First("Title", "AppName"), "Unknown App"),
		FioriID:         orDefault(details.Get("fioriId"), NotAvailable),
		Release:         orDefault(details.First("ReleaseName", "releaseId"), NotAvailable),
		ApplicationType: orDefault(details.Get("ApplicationType"), NotAvailable),
		UITechnology:    orDefault(details.Get("UITechnology"), NotAvailable),
		BSPName:         details.Get("BSPName"),
		UI5ComponentID:  details.Get("SAPUI5ComponentId"),
		Deprecated:      apps.IsDeprecated(details),
	}
	if comp := details.Get("ApplicationComponent"); comp != "" {
		info.Component = comp + " (" + details.Get("ApplicationComponentText") + ")"
	}
	return info, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

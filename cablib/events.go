// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cablib

/*
 * System Events
 */
const (
	// EvtReboot indicates a reboot of the local system was requested.
	EvtReboot = iota + 1000
)

/*
 * Internal Events
 */
const (
	// EvtWindowCreated indicates a new maintenance window was stored.
	EvtWindowCreated = iota + 2000
	// EvtWindowUpdated indicates an existing maintenance window was overwritten.
	EvtWindowUpdated
	// EvtWindowRemoved indicates a maintenance window was removed.
	EvtWindowRemoved
	// EvtWindowList indicates maintenance windows were enumerated.
	EvtWindowList
	// EvtWindowStart indicates a maintenance window run has started.
	EvtWindowStart
	// EvtWindowComplete indicates a maintenance window run has finished.
	EvtWindowComplete
	// EvtWindowSkip indicates a maintenance window run was skipped.
	EvtWindowSkip
	// EvtTrigger indicates a scheduled trigger was registered or unregistered.
	EvtTrigger
	// EvtReport indicates a compliance report was generated.
	EvtReport
	// EvtSearch indicates a search for updates.
	EvtSearch
	// EvtDownload indicates updates are being downloaded.
	EvtDownload
	// EvtInstall indicates updates are being installed.
	EvtInstall
	// EvtInstallSuccess indicates updates were installed successfully.
	EvtInstallSuccess
	// EvtRebootRequired indicates that the system is in need of a reboot.
	EvtRebootRequired
	// EvtHistory indicates an update history query.
	EvtHistory
	// EvtHide indicates updates are being hidden.
	EvtHide
	// EvtUnhide indicates updates are being unhidden.
	EvtUnhide
	// EvtReadiness indicates the result of the update engine capability check.
	EvtReadiness
	// EvtMisc indicates an uncategorized internal event.
	EvtMisc
)

/*
 * Errors
 */
const (
	// EvtErrValidation indicates invalid input was rejected.
	EvtErrValidation = iota + 4000
	// EvtErrNotFound indicates an operation on an unknown maintenance window.
	EvtErrNotFound
	// EvtErrStore indicates a problem reading or writing window records.
	EvtErrStore
	// EvtErrTrigger indicates a problem with the scheduled trigger of a window.
	EvtErrTrigger
	// EvtErrEngine indicates a failure of the update engine.
	EvtErrEngine
	// EvtErrInstallFailure indicates a problem installing updates.
	EvtErrInstallFailure
	// EvtErrDownloadFailure indicates a problem downloading updates.
	EvtErrDownloadFailure
	// EvtErrQueryFailure indicates a problem querying for updates.
	EvtErrQueryFailure
	// EvtErrHistory indicates a problem querying update history.
	EvtErrHistory
	// EvtErrHide indicates a problem hiding updates.
	EvtErrHide
	// EvtErrUnhide indicates a problem unhiding updates.
	EvtErrUnhide
	// EvtErrPermission indicates the process lacks elevated privileges.
	EvtErrPermission
	// EvtErrConfig indicates a problem with configuration.
	EvtErrConfig
	// EvtErrNotifications indicates a problem displaying notifications.
	EvtErrNotifications
	// EvtErrMaintWindow indicates a problem with an external maintenance window source.
	EvtErrMaintWindow
	// EvtErrReport indicates a problem generating a compliance report.
	EvtErrReport
	// EvtErrMisc indicates a miscellaneous internal error condition.
	EvtErrMisc
)

package usecase

var (
	BuildBodyForTest                   = buildBody
	MergeReportForTest                 = mergeReport
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
)

package station

var ParseReportID = parseReportID

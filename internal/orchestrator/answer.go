package orchestrator

// DefaultFinalQuery is the submitted answer when none is configured: for every
// department with employees whose total payments exceed 70000, their average
// age and up to ten of their names, newest department first.
const DefaultFinalQuery = `WITH EmpSalaries AS (
    SELECT
        p.EMP_ID,
        SUM(p.AMOUNT) AS TotalSal
    FROM PAYMENTS p
    GROUP BY p.EMP_ID
    HAVING SUM(p.AMOUNT) > 70000
),
HighEarners AS (
    SELECT
        e.EMP_ID,
        e.DEPARTMENT,
        e.FIRST_NAME,
        e.LAST_NAME,
        DATEDIFF(YEAR, e.DOB, GETDATE()) AS Age
    FROM EMPLOYEE e
    JOIN EmpSalaries es ON e.EMP_ID = es.EMP_ID
),
DeptStats AS (
    SELECT
        DEPARTMENT,
        AVG(Age) AS AVERAGE_AGE
    FROM HighEarners
    GROUP BY DEPARTMENT
),
Top10Names AS (
    SELECT
        DEPARTMENT,
        FIRST_NAME,
        LAST_NAME,
        ROW_NUMBER() OVER (PARTITION BY DEPARTMENT ORDER BY FIRST_NAME, LAST_NAME) AS rn
    FROM HighEarners
)
SELECT
    d.DEPARTMENT_NAME,
    ds.AVERAGE_AGE,
    STRING_AGG(t.FIRST_NAME + ' ' + t.LAST_NAME, ', ') WITHIN GROUP (ORDER BY t.FIRST_NAME, t.LAST_NAME) AS EMPLOYEE_LIST
FROM DEPARTMENT d
JOIN DeptStats ds ON d.DEPARTMENT_ID = ds.DEPARTMENT
LEFT JOIN Top10Names t ON d.DEPARTMENT_ID = t.DEPARTMENT AND t.rn <= 10
GROUP BY d.DEPARTMENT_ID, d.DEPARTMENT_NAME, ds.AVERAGE_AGE
ORDER BY d.DEPARTMENT_ID DESC;
`
